package hclgrid

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/fsutil"
)

// gridFileSchema describes the top-level blocks a grid file may contain.
var gridFileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "task", LabelNames: []string{"type", "name"}},
		{Type: "run"},
	},
}

// runBlockSchema describes the body of a `run` block.
var runBlockSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "args", LabelNames: []string{"task"}},
	},
}

// Load finds and parses all .hcl files under gridPath (a single file or a
// directory tree) into a Grid model. Any syntactic or structural problem is
// a load error; nothing executes before the whole grid is valid.
func Load(ctx context.Context, gridPath string) (*Grid, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading grid from path.", "path", gridPath)

	files, err := fsutil.FindFilesByExtension(gridPath, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find grid files in %s: %w", gridPath, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl grid files found in %s", gridPath)
	}

	grid := NewGrid()
	parser := hclparse.NewParser()
	for _, file := range files {
		if err := loadFile(grid, parser, file); err != nil {
			return nil, err
		}
	}

	logger.Debug("Grid loaded.", "files", len(files), "tasks", len(grid.Tasks), "runs", len(grid.Runs))
	return grid, nil
}

// loadFile parses a single grid file and appends its declarations, in
// source order, to the grid.
func loadFile(grid *Grid, parser *hclparse.Parser, filePath string) error {
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse grid file %s: %w", filePath, diags)
	}

	content, diags := hclFile.Body.Content(gridFileSchema)
	if diags.HasErrors() {
		return fmt.Errorf("invalid grid file %s: %w", filePath, diags)
	}

	for _, block := range content.Blocks {
		switch block.Type {
		case "task":
			decl, err := decodeTaskBlock(block, filePath)
			if err != nil {
				return err
			}
			grid.Tasks = append(grid.Tasks, decl)
		case "run":
			decl, err := decodeRunBlock(block, filePath)
			if err != nil {
				return err
			}
			grid.Runs = append(grid.Runs, decl)
		}
	}

	return nil
}

// decodeTaskBlock translates one `task "<type>" "<name>"` block. The
// depends_on attribute names edges; every other attribute is static
// configuration and must be a literal value.
func decodeTaskBlock(block *hcl.Block, filePath string) (*TaskDecl, error) {
	decl := &TaskDecl{
		Type:   block.Labels[0],
		Name:   block.Labels[1],
		Static: make(map[string]any),
		File:   filePath,
	}

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid task %q in %s: %w", decl.Name, filePath, diags)
	}

	for attrName, attr := range attrs {
		if attrName == "depends_on" {
			deps, err := decodeDependsOn(attr.Expr)
			if err != nil {
				return nil, fmt.Errorf("invalid depends_on for task %q in %s: %w", decl.Name, filePath, err)
			}
			decl.DependsOn = deps
			continue
		}

		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("attribute %q of task %q in %s must be a literal value: %w",
				attrName, decl.Name, filePath, diags)
		}
		native, err := ctyToNative(val)
		if err != nil {
			return nil, fmt.Errorf("attribute %q of task %q in %s: %w", attrName, decl.Name, filePath, err)
		}
		decl.Static[attrName] = native
	}

	return decl, nil
}

// decodeDependsOn extracts the prerequisite names from a `depends_on`
// expression. Entries must be task references of the form `task.<name>`.
func decodeDependsOn(expr hcl.Expression) ([]string, error) {
	traversals := expr.Variables()
	if len(traversals) == 0 {
		return nil, fmt.Errorf("depends_on must be a list of task.<name> references")
	}

	deps := make([]string, 0, len(traversals))
	for _, traversal := range traversals {
		if traversal.RootName() != "task" || len(traversal) != 2 {
			return nil, fmt.Errorf("invalid reference %q: expected task.<name>", traversal.RootName())
		}
		attr, ok := traversal[1].(hcl.TraverseAttr)
		if !ok {
			return nil, fmt.Errorf("invalid task reference: expected task.<name>")
		}
		deps = append(deps, attr.Name)
	}
	return deps, nil
}

// decodeRunBlock translates one `run` block into the external arguments for
// a single run.
func decodeRunBlock(block *hcl.Block, filePath string) (*RunDecl, error) {
	decl := &RunDecl{Args: make(map[string]map[string]any)}

	content, diags := block.Body.Content(runBlockSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid run block in %s: %w", filePath, diags)
	}

	for _, argsBlock := range content.Blocks {
		taskName := argsBlock.Labels[0]
		if _, exists := decl.Args[taskName]; exists {
			return nil, fmt.Errorf("duplicate args block for task %q in %s", taskName, filePath)
		}

		attrs, diags := argsBlock.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid args for task %q in %s: %w", taskName, filePath, diags)
		}

		kwargs := make(map[string]any, len(attrs))
		for attrName, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("argument %q for task %q in %s must be a literal value: %w",
					attrName, taskName, filePath, diags)
			}
			native, err := ctyToNative(val)
			if err != nil {
				return nil, fmt.Errorf("argument %q for task %q in %s: %w", attrName, taskName, filePath, err)
			}
			kwargs[attrName] = native
		}
		decl.Args[taskName] = kwargs
	}

	return decl, nil
}
