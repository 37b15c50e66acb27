package generator

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/okonomi/serverless-typespec-generator/pkg/config"
	"github.com/okonomi/serverless-typespec-generator/pkg/generator/typespec"
	"github.com/okonomi/serverless-typespec-generator/pkg/ir"
	"github.com/okonomi/serverless-typespec-generator/pkg/openapi"
	"github.com/okonomi/serverless-typespec-generator/pkg/serverless"
)

// Emitter defines the interface for output emitters
type Emitter interface {
	// Emit renders the nodes of one generation run into file contents
	Emit(cfg *config.Config, nodes []ir.Node) ([]byte, error)
	// GetType returns the type identifier for this emitter (e.g., "typespec")
	GetType() string
}

// Registry manages available emitters
type Registry struct {
	emitters map[string]Emitter
}

// NewRegistry creates a new emitter registry
func NewRegistry() *Registry {
	return &Registry{
		emitters: make(map[string]Emitter),
	}
}

// Register adds an emitter to the registry
func (r *Registry) Register(e Emitter) {
	r.emitters[e.GetType()] = e
}

// Get retrieves an emitter by type
func (r *Registry) Get(emitterType string) (Emitter, bool) {
	e, exists := r.emitters[emitterType]
	return e, exists
}

// GetAvailableTypes returns all registered emitter types, sorted
func (r *Registry) GetAvailableTypes() []string {
	types := make([]string, 0, len(r.emitters))
	for t := range r.emitters {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// GenerateOptions contains options for generation
type GenerateOptions struct {
	ConfigPath string
	// Check fails when an output would change instead of writing it
	Check    bool
	Fallback FallbackOptions
}

// FallbackOptions contains fallback options when no config file is provided
type FallbackOptions struct {
	Spec             string
	Type             string
	OutFile          string
	ArrayMode        string
	IncludeFunctions []string
	ExcludeFunctions []string
}

// Service provides high-level generation functionality
type Service struct {
	registry *Registry
	logger   *log.Logger
}

// NewService creates a new generator service with default emitters
func NewService() *Service {
	registry := NewRegistry()
	// Register default emitters
	registry.Register(typespec.NewEmitter())
	registry.Register(openapi.NewEmitter())
	return &Service{
		registry: registry,
		logger:   log.Default(),
	}
}

// NewServiceWithRegistry creates a new generator service with a custom registry
func NewServiceWithRegistry(registry *Registry) *Service {
	return &Service{
		registry: registry,
		logger:   log.Default(),
	}
}

// WithLogger sets the logger used for warnings and progress.
func (s *Service) WithLogger(logger *log.Logger) *Service {
	s.logger = logger
	return s
}

// Generate generates outputs based on the provided options
func (s *Service) Generate(opts GenerateOptions) error {
	var cfg *config.Config
	var err error

	if opts.ConfigPath == "" {
		// Use fallback options to create a config
		if opts.Fallback.Spec == "" || opts.Fallback.OutFile == "" {
			return fmt.Errorf("either config path or spec and output file must be provided")
		}
		outType := opts.Fallback.Type
		if outType == "" {
			outType = config.OutputTypeSpec
		}
		cfg = &config.Config{
			Spec:              opts.Fallback.Spec,
			ArrayResponseMode: opts.Fallback.ArrayMode,
			IncludeFunctions:  opts.Fallback.IncludeFunctions,
			ExcludeFunctions:  opts.Fallback.ExcludeFunctions,
			Outputs: []config.Output{
				{Type: outType, OutFile: opts.Fallback.OutFile},
			},
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
	} else {
		cfg, err = config.Load(opts.ConfigPath)
		if err != nil {
			return err
		}
	}

	return s.GenerateFromConfig(cfg, opts.Check)
}

// GenerateFromConfig loads the serverless file named by cfg.Spec and writes
// every configured output.
func (s *Service) GenerateFromConfig(cfg *config.Config, check bool) error {
	svc, err := serverless.Load(cfg.Spec)
	if err != nil {
		return err
	}

	resolved, nodes, err := s.Build(cfg, svc)
	if err != nil {
		return err
	}

	for _, output := range resolved.Outputs {
		emitter, exists := s.registry.Get(output.Type)
		if !exists {
			return fmt.Errorf("unsupported output type: %s", output.Type)
		}

		data, err := emitter.Emit(resolved, nodes)
		if err != nil {
			return fmt.Errorf("failed to emit %s output: %w", output.Type, err)
		}

		wrote, err := WriteFile(output.OutFile, data, WriteOptions{Check: check})
		if err != nil {
			return err
		}
		if !wrote {
			s.logger.Printf("unchanged %s", output.OutFile)
			continue
		}
		s.logger.Printf("wrote %s", output.OutFile)

		// Execute post-generation command if specified
		if err := s.executePostGenCommand(output); err != nil {
			return fmt.Errorf("post-generation command failed for %s: %w", output.OutFile, err)
		}
	}

	return nil
}

// Build resolves the configuration against the serverless file and runs the
// pipeline up to the TypeSpec nodes.
func (s *Service) Build(cfg *config.Config, svc *serverless.Service) (*config.Config, []ir.Node, error) {
	resolved := ResolveConfig(cfg, svc)
	opts := OptionsFromConfig(resolved)
	opts.Logger = s.logger
	nodes, err := BuildNodes(svc, opts)
	if err != nil {
		return nil, nil, err
	}
	return resolved, nodes, nil
}

// ResolveConfig returns a copy of cfg with custom.typespec settings and
// defaults applied. cfg may be nil.
func ResolveConfig(cfg *config.Config, svc *serverless.Service) *config.Config {
	resolved := config.Config{}
	if cfg != nil {
		resolved = *cfg
	}
	if svc != nil {
		resolved.ApplySettings(svc.Custom.TypeSpec)
	}
	resolved.ApplyDefaults()
	return &resolved
}

// BuildNodes runs normalization and IR building.
func BuildNodes(svc *serverless.Service, opts Options) ([]ir.Node, error) {
	decls, err := BuildServerlessIR(svc, opts)
	if err != nil {
		return nil, err
	}
	return BuildTypeSpecIR(decls, opts)
}

// GetRegistry returns the emitter registry
func (s *Service) GetRegistry() *Registry {
	return s.registry
}

// executePostGenCommand executes the post-generation command for an output
func (s *Service) executePostGenCommand(output config.Output) error {
	command := output.GetPostCommand()
	if len(command) == 0 {
		return nil // No command to execute
	}

	return s.executeCommand(command, filepath.Dir(output.OutFile), "post-command")
}

// executeCommand runs an argv-style command in workDir.
func (s *Service) executeCommand(command []string, workDir, commandLabel string) error {
	if len(command) == 0 {
		return nil
	}

	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = workDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	cmdDescription := strings.Join(command, " ")

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s (%s) failed: %w", commandLabel, cmdDescription, err)
	}

	return nil
}
