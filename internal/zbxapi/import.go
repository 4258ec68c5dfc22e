package zbxapi

import (
	"context"
	"fmt"
)

type importRule struct {
	CreateMissing  bool `json:"createMissing"`
	UpdateExisting bool `json:"updateExisting,omitempty"`
	DeleteMissing  bool `json:"deleteMissing,omitempty"`
}

// ImportTemplate imports a template export document with
// configuration.import. Templates, items and discovery rules are created or
// updated and missing groups are created. Nothing is deleted.
func (c *Client) ImportTemplate(ctx context.Context, source []byte) error {
	ver, err := c.APIVersion(ctx)
	if err != nil {
		return err
	}

	upsert := &importRule{CreateMissing: true, UpdateExisting: true}
	rules := map[string]*importRule{
		"templates":      upsert,
		"items":          upsert,
		"discoveryRules": upsert,
		"valueMaps":      upsert,
	}
	// host groups and template groups were split in 6.2
	if ver.AtLeast(6, 2) {
		rules["template_groups"] = &importRule{CreateMissing: true}
	} else {
		rules["groups"] = &importRule{CreateMissing: true}
	}

	params := struct {
		Format string                 `json:"format"`
		Source string                 `json:"source"`
		Rules  map[string]*importRule `json:"rules"`
	}{
		Format: "xml",
		Source: string(source),
		Rules:  rules,
	}
	var ok bool
	if err := c.Call(ctx, "configuration.import", params, &ok); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("configuration.import returned false")
	}
	return nil
}

type Template struct {
	TemplateID string `json:"templateid"`
	Host       string `json:"host"`
	Name       string `json:"name"`
}

// GetTemplateByName looks up a template by its technical name.
func (c *Client) GetTemplateByName(ctx context.Context, name string) (*Template, error) {
	type filter struct {
		Host []string `json:"host"`
	}
	params := struct {
		Output any    `json:"output"`
		Filter filter `json:"filter"`
	}{
		Output: []string{"templateid", "host", "name"},
		Filter: filter{Host: []string{name}},
	}
	var templates []Template
	if err := c.Call(ctx, "template.get", params, &templates); err != nil {
		return nil, err
	}
	if len(templates) != 1 {
		return nil, fmt.Errorf("expected 1 template named %q but got %d", name, len(templates))
	}
	return &templates[0], nil
}
