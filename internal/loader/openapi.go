package loader

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"scenario-planner/internal/contract"
)

// Reference prefixes for reusable responses.
const (
	componentResponsesPrefix = "#/components/responses/"
	swaggerResponsesPrefix   = "#/responses/"
)

// maxResponseRefs bounds chains of response references.
const maxResponseRefs = 8

// preferredContentTypes are tried in order before falling back to the
// first declared content type.
var preferredContentTypes = []string{"application/json", "*/*"}

type document struct {
	OpenAPI  string   `yaml:"openapi"`
	Swagger  string   `yaml:"swagger"`
	Info     info     `yaml:"info"`
	Servers  []server `yaml:"servers"`
	Host     string   `yaml:"host"`
	BasePath string   `yaml:"basePath"`
	Schemes  []string `yaml:"schemes"`
	// Paths is kept as a node to preserve document order.
	Paths       yaml.Node                   `yaml:"paths"`
	Components  components                  `yaml:"components"`
	Definitions map[string]*contract.Schema `yaml:"definitions"`
	Responses   map[string]*response        `yaml:"responses"`
}

type info struct {
	Title   string `yaml:"title"`
	Version string `yaml:"version"`
}

type server struct {
	URL string `yaml:"url"`
}

type components struct {
	Schemas   map[string]*contract.Schema `yaml:"schemas"`
	Responses map[string]*response        `yaml:"responses"`
}

type operation struct {
	OperationID string    `yaml:"operationId"`
	Summary     string    `yaml:"summary"`
	Responses   yaml.Node `yaml:"responses"`
}

type response struct {
	Ref    string          `yaml:"$ref"`
	Schema *contract.Schema `yaml:"schema"`
	// Content is kept as a node so "first content type" means first in
	// the document.
	Content yaml.Node `yaml:"content"`
}

type mediaType struct {
	Schema *contract.Schema `yaml:"schema"`
}

func (d *document) isSwagger() bool {
	return d.Swagger != ""
}

func (d *document) check() error {
	switch {
	case strings.HasPrefix(d.OpenAPI, "3."):
		return nil
	case d.Swagger == "2.0":
		return nil
	case d.OpenAPI != "":
		return fmt.Errorf("unsupported OpenAPI version %q", d.OpenAPI)
	case d.Swagger != "":
		return fmt.Errorf("unsupported Swagger version %q", d.Swagger)
	default:
		return fmt.Errorf("not an OpenAPI 3 or Swagger 2 document")
	}
}

// toContract converts the decoded document.
func (d *document) toContract() (*contract.Contract, error) {
	if err := d.check(); err != nil {
		return nil, err
	}

	c := &contract.Contract{
		Title:   d.Info.Title,
		Version: d.Info.Version,
		BaseURL: d.baseURL(),
		Schemas: make(map[string]*contract.Schema),
	}

	for name, s := range d.Components.Schemas {
		c.Schemas[name] = s
	}

	for name, s := range d.Definitions {
		c.Schemas[name] = s
	}

	prefix := ""
	if d.isSwagger() {
		prefix = strings.TrimRight(d.BasePath, "/")
	}

	if d.Paths.Kind != yaml.MappingNode {
		return c, nil
	}

	for i := 0; i+1 < len(d.Paths.Content); i += 2 {
		path := d.Paths.Content[i].Value

		ops, err := d.pathOperations(prefix+path, d.Paths.Content[i+1])
		if err != nil {
			return nil, err
		}

		c.Operations = append(c.Operations, ops...)
	}

	return c, nil
}

func (d *document) pathOperations(path string, item *yaml.Node) ([]contract.Operation, error) {
	if item.Kind != yaml.MappingNode {
		return nil, nil
	}

	var out []contract.Operation

	for i := 0; i+1 < len(item.Content); i += 2 {
		method := strings.ToUpper(item.Content[i].Value)
		if !slices.Contains(contract.Methods, method) {
			continue
		}

		var raw operation
		if err := item.Content[i+1].Decode(&raw); err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, err)
		}

		op := contract.Operation{
			ID:        raw.OperationID,
			Method:    method,
			Path:      path,
			Summary:   raw.Summary,
			Responses: make(map[string]*contract.Schema),
		}

		if err := d.collectResponses(&op, &raw.Responses); err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, err)
		}

		out = append(out, op)
	}

	return out, nil
}

func (d *document) collectResponses(op *contract.Operation, node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		status := node.Content[i].Value

		var r response
		if err := node.Content[i+1].Decode(&r); err != nil {
			return fmt.Errorf("response %s: %w", status, err)
		}

		schema, err := d.responseSchema(&r)
		if err != nil {
			return fmt.Errorf("response %s: %w", status, err)
		}

		op.Responses[status] = schema
	}

	return nil
}

// responseSchema extracts the JSON body schema of r, following response
// references. A response without a body yields nil.
func (d *document) responseSchema(r *response) (*contract.Schema, error) {
	for hops := 0; r.Ref != ""; hops++ {
		if hops >= maxResponseRefs {
			return nil, fmt.Errorf("response reference chain too long at %s", r.Ref)
		}

		next, ok := d.lookupResponse(r.Ref)
		if !ok {
			return nil, fmt.Errorf("unresolved response reference %s", r.Ref)
		}

		r = next
	}

	if r.Content.Kind == yaml.MappingNode && len(r.Content.Content) > 0 {
		node := contentNode(&r.Content)

		var mt mediaType
		if err := node.Decode(&mt); err != nil {
			return nil, err
		}

		return mt.Schema, nil
	}

	return r.Schema, nil
}

// contentNode picks the media type to read a schema from.
func contentNode(content *yaml.Node) *yaml.Node {
	for _, want := range preferredContentTypes {
		for i := 0; i+1 < len(content.Content); i += 2 {
			if content.Content[i].Value == want {
				return content.Content[i+1]
			}
		}
	}

	return content.Content[1]
}

func (d *document) lookupResponse(ref string) (*response, bool) {
	switch {
	case strings.HasPrefix(ref, componentResponsesPrefix):
		r, ok := d.Components.Responses[strings.TrimPrefix(ref, componentResponsesPrefix)]

		return r, ok && r != nil
	case strings.HasPrefix(ref, swaggerResponsesPrefix):
		r, ok := d.Responses[strings.TrimPrefix(ref, swaggerResponsesPrefix)]

		return r, ok && r != nil
	default:
		return nil, false
	}
}

// baseURL returns the server the plan should target: for OpenAPI the first
// localhost server or else the first server; for Swagger scheme://host,
// preferring https. basePath is not part of it since it prefixes paths.
func (d *document) baseURL() string {
	if d.isSwagger() {
		if d.Host == "" {
			return ""
		}

		scheme := "http"
		if slices.Contains(d.Schemes, "https") {
			scheme = "https"
		} else if len(d.Schemes) > 0 {
			scheme = d.Schemes[0]
		}

		return scheme + "://" + d.Host
	}

	for _, s := range d.Servers {
		if strings.Contains(strings.ToLower(s.URL), "localhost") {
			return s.URL
		}
	}

	if len(d.Servers) > 0 {
		return d.Servers[0].URL
	}

	return ""
}
