// Package material wraps a procedural texture generator CLI as the
// generate_material capability used by the material command server.
package material

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/gosh"
	"github.com/viant/gosh/runner/local"

	"github.com/scenebridge/scenebridge/internal/conv"
	"github.com/scenebridge/scenebridge/protocol"
	"github.com/scenebridge/scenebridge/tool"
)

// ToolName is the registered command name.
const ToolName = "generate_material"

// Config locates the generator and its output directory.
type Config struct {
	// Command is the generator executable invoked per request.
	Command string
	// OutputDir is where generated texture maps land (afs URL or path).
	OutputDir string
}

// Service shells out to the generator and reports the files it produced.
type Service struct {
	shell  *gosh.Service
	fs     afs.Service
	config *Config
}

// New creates a service running the generator through a local shell.
func New(ctx context.Context, config *Config) (*Service, error) {
	shell, err := gosh.New(ctx, local.New())
	if err != nil {
		return nil, fmt.Errorf("create shell service: %w", err)
	}
	return &Service{shell: shell, fs: afs.New(), config: config}, nil
}

// Register binds the generator tool.
func (s *Service) Register(registry *tool.Registry) {
	registry.Register(ToolName, s.generate)
}

func (s *Service) generate(params map[string]any) (protocol.Response, error) {
	materialName := conv.AsString(params["material"], "")
	if materialName == "" {
		return nil, fmt.Errorf("Missing required parameter: material")
	}
	outputDir := conv.AsString(params["output"], s.config.OutputDir)

	command := []string{
		s.config.Command,
		"--material", materialName,
		"--output", outputDir,
	}
	if resolution := conv.AsString(params["resolution"], ""); resolution != "" {
		command = append(command, "--resolution", resolution)
	}
	if types := conv.AsStrings(params["types"]); len(types) > 0 {
		command = append(command, "--types")
		command = append(command, types...)
	}
	if conv.AsBool(params["preview"]) {
		command = append(command, "--preview")
	}

	ctx := context.Background()
	output, exitCode, err := s.shell.Run(ctx, strings.Join(command, " "))
	if err != nil {
		return nil, fmt.Errorf("generator failed: %w", err)
	}
	if exitCode != 0 {
		return protocol.Response{
			"success":    false,
			"error":      "generator command failed",
			"output":     output,
			"returncode": exitCode,
		}, nil
	}

	files, err := s.generatedFiles(ctx, outputDir, materialName)
	if err != nil {
		return nil, err
	}
	return protocol.Response{
		"success":         true,
		"output":          output,
		"generated_files": files,
	}, nil
}

// generatedFiles lists output files named after the material.
func (s *Service) generatedFiles(ctx context.Context, outputDir, materialName string) ([]string, error) {
	exists, err := s.fs.Exists(ctx, outputDir)
	if err != nil || !exists {
		return []string{}, nil
	}
	objects, err := s.fs.List(ctx, outputDir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", outputDir, err)
	}
	files := []string{}
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		if strings.HasPrefix(object.Name(), materialName+"_") {
			files = append(files, url.Join(outputDir, object.Name()))
		}
	}
	return files, nil
}
