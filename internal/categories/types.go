package categories

// Category describes a document category available to every profile.
type Category struct {
	// ID is the category identifier (set during YAML unmarshaling)
	ID string `yaml:"-" json:"id"`

	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
	Color       string `yaml:"color" json:"color"`

	// SubCategories are optional refinements shown in upload forms.
	SubCategories []string `yaml:"sub_categories" json:"subCategories"`
}

// categoryFile is the on-disk shape of config/categories.yaml.
type categoryFile struct {
	Categories map[string]Category `yaml:"categories"`
	Order      []string            `yaml:"order"`
}
