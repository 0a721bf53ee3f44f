package wizard

import "github.com/charmbracelet/huh"

// TemplateOption represents a project scaffolding template.
type TemplateOption struct {
	Value       string
	Label       string
	Description string
}

// RegionOption represents a blob-storage region.
type RegionOption struct {
	Value       string
	Label       string
	Description string
}

// Templates contains the scaffolding templates offered by the wizard.
var Templates = []TemplateOption{
	{Value: "web", Label: "web", Description: "Full-stack web application"},
	{Value: "api", Label: "api", Description: "HTTP API service"},
	{Value: "worker", Label: "worker", Description: "Background worker"},
	{Value: "minimal", Label: "minimal", Description: "Bare project skeleton"},
}

// Regions contains common bucket regions.
var Regions = []RegionOption{
	{Value: "us-east-1", Label: "us-east-1", Description: "N. Virginia, USA"},
	{Value: "us-west-2", Label: "us-west-2", Description: "Oregon, USA"},
	{Value: "eu-central-1", Label: "eu-central-1", Description: "Frankfurt, Germany"},
	{Value: "eu-west-1", Label: "eu-west-1", Description: "Ireland"},
	{Value: "ap-southeast-1", Label: "ap-southeast-1", Description: "Singapore"},
}

// TemplatesToOptions converts TemplateOption slice to huh.Option slice.
func TemplatesToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(Templates))
	for i, t := range Templates {
		opts[i] = huh.NewOption(t.Label+" - "+t.Description, t.Value)
	}
	return opts
}

// RegionsToOptions converts RegionOption slice to huh.Option slice.
func RegionsToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(Regions))
	for i, r := range Regions {
		opts[i] = huh.NewOption(r.Label+" - "+r.Description, r.Value)
	}
	return opts
}
