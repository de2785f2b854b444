// ABOUTME: Program content models: weekly routines, diet plans and glossary.
// ABOUTME: Content is read-only display data loaded from embedded YAML.
package models

// Exercise is one entry of a training day.
type Exercise struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Sets  string `yaml:"sets" json:"sets"`
	Rest  string `yaml:"rest" json:"rest"`
	RIR   string `yaml:"rir,omitempty" json:"rir,omitempty"`
	Notes string `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// Routine is the workout for one weekday.
type Routine struct {
	Key       string     `yaml:"key" json:"key"`
	Label     string     `yaml:"label" json:"label"`
	Type      string     `yaml:"type" json:"type"`
	Exercises []Exercise `yaml:"exercises" json:"exercises"`
}

// Meal is one entry of a diet day.
type Meal struct {
	Time     string `yaml:"time" json:"time"`
	Name     string `yaml:"name" json:"name"`
	Foods    string `yaml:"foods" json:"foods"`
	Quantity string `yaml:"quantity" json:"quantity"`
	Notes    string `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// DietDay is the meal plan for a training or rest day.
type DietDay struct {
	Key   string `yaml:"key" json:"key"`
	Title string `yaml:"title" json:"title"`
	Meals []Meal `yaml:"meals" json:"meals"`
}

// GlossarySection is a titled block of glossary text.
type GlossarySection struct {
	Title string   `yaml:"title" json:"title"`
	Items []string `yaml:"items" json:"items"`
}

// Glossary explains the training vocabulary.
type Glossary struct {
	RIR         GlossarySection `yaml:"rir" json:"rir"`
	Progression GlossarySection `yaml:"progression" json:"progression"`
	Tempo       GlossarySection `yaml:"tempo" json:"tempo"`
	ProTip      string          `yaml:"pro_tip" json:"pro_tip"`
}
