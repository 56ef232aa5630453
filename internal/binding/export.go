package binding

import (
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"recipe-resolver/internal/common"
)

// ExportFile is the serializable form of a Resolved table.
type ExportFile struct {
	Components []ExportComponent `yaml:"components" json:"components"`
	Instances  []ExportInstance  `yaml:"instances" json:"instances"`
}

// ExportComponent lists the declared variables of one component.
type ExportComponent struct {
	ID        string   `yaml:"id" json:"id"`
	Variables []string `yaml:"variables,omitempty" json:"variables,omitempty"`
}

// ExportInstance lists the resolved bindings of one embedded instance.
type ExportInstance struct {
	ID           string           `yaml:"id" json:"id"`
	Properties   []ExportProperty `yaml:"properties" json:"properties"`
	Redirections []ExportProperty `yaml:"redirections,omitempty" json:"redirections,omitempty"`
}

// ExportProperty lists the sources of one property.
type ExportProperty struct {
	Key     string         `yaml:"key" json:"key"`
	Sources []ExportSource `yaml:"sources" json:"sources"`
}

// ExportSource lists the getters read from one component.
type ExportSource struct {
	Component string   `yaml:"component" json:"component"`
	Getters   []string `yaml:"getters" json:"getters"`
}

// Export converts r into its serializable form, sorted by id and key.
func (r *Resolved) Export() *ExportFile {
	out := &ExportFile{
		Components: []ExportComponent{},
		Instances:  []ExportInstance{},
	}

	for _, id := range r.Components() {
		out.Components = append(out.Components, ExportComponent{ID: id, Variables: r.VariablesOf(id)})
	}

	for _, id := range r.Instances() {
		out.Instances = append(out.Instances, ExportInstance{
			ID:           id,
			Properties:   exportProperties(r.PropertiesOf(id)),
			Redirections: exportProperties(r.RedirectionsOf(id)),
		})
	}

	return out
}

func exportProperties(byProperty ByProperty) []ExportProperty {
	if len(byProperty) == 0 {
		return nil
	}

	out := make([]ExportProperty, 0, len(byProperty))

	for _, key := range common.SortedKeys(byProperty) {
		prop := ExportProperty{Key: key, Sources: []ExportSource{}}

		for _, component := range common.SortedKeys(byProperty[key]) {
			getters := byProperty[key][component]

			src := ExportSource{Component: component, Getters: make([]string, len(getters))}
			for i, g := range getters {
				src.Getters[i] = g.String()
			}

			prop.Sources = append(prop.Sources, src)
		}

		out = append(out, prop)
	}

	return out
}

// ExportYAML renders r as YAML.
func ExportYAML(r *Resolved) ([]byte, error) {
	return yaml.Marshal(r.Export())
}

// ExportJSON renders r as indented JSON.
func ExportJSON(r *Resolved) ([]byte, error) {
	return json.MarshalIndent(r.Export(), "", "  ")
}
