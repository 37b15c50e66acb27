package generator

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okonomi/serverless-typespec-generator/pkg/config"
	"github.com/okonomi/serverless-typespec-generator/pkg/ir"
)

const createUserService = `
service: users
functions:
  createUser:
    handler: users.create
    events:
      - http:
          method: post
          path: users
          request:
            schemas:
              application/json:
                title: CreateUserRequest
                type: object
                properties:
                  name: {type: string}
                  email: {type: string}
                required: [name, email]
          documentation:
            methodResponses:
              - statusCode: 201
                responseModels:
                  application/json:
                    title: CreateUserResponse
                    type: object
                    properties:
                      id: {type: string}
                    required: [id]
`

const createUserTypeSpec = `import "@typespec/http";

using Http;

@service(#{ title: "Generated API" })
namespace GeneratedApi;

@route("/users")
@post
op createUser(@body body: CreateUserRequest): {
  @statusCode statusCode: 201;
  @body body: CreateUserResponse;
};

model CreateUserRequest {
  name: string;
  email: string;
}

model CreateUserResponse {
  id: string;
}
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func quietService() (*Service, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewService().WithLogger(log.New(&buf, "", 0)), &buf
}

func TestService_GenerateFromConfig(t *testing.T) {
	dir := t.TempDir()
	spec := writeFixture(t, dir, "serverless.yml", createUserService)
	tspFile := filepath.Join(dir, "tsp", "main.tsp")
	oasFile := filepath.Join(dir, "openapi.json")

	cfg := &config.Config{
		Spec: spec,
		Outputs: []config.Output{
			{Type: config.OutputTypeSpec, OutFile: tspFile},
			{Type: config.OutputOpenAPI, OutFile: oasFile},
		},
	}

	service, logs := quietService()
	require.NoError(t, service.GenerateFromConfig(cfg, false))

	got, err := os.ReadFile(tspFile)
	require.NoError(t, err)
	assert.Equal(t, createUserTypeSpec, string(got))

	oas, err := os.ReadFile(oasFile)
	require.NoError(t, err)
	assert.Contains(t, string(oas), `"CreateUserResponse"`)
	assert.Contains(t, logs.String(), "wrote "+tspFile)

	// A second run leaves everything untouched, so check mode passes.
	require.NoError(t, service.GenerateFromConfig(cfg, true))
	assert.Contains(t, logs.String(), "unchanged "+tspFile)

	require.NoError(t, os.WriteFile(tspFile, []byte("stale"), 0o644))
	err = service.GenerateFromConfig(cfg, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check failed")
}

func TestService_PostCommand(t *testing.T) {
	dir := t.TempDir()
	spec := writeFixture(t, dir, "serverless.yml", createUserService)
	cfg := &config.Config{
		Spec: spec,
		Outputs: []config.Output{{
			Type:        config.OutputTypeSpec,
			OutFile:     filepath.Join(dir, "out", "main.tsp"),
			PostCommand: []string{"touch", "formatted"},
		}},
	}

	service, _ := quietService()
	require.NoError(t, service.GenerateFromConfig(cfg, false))
	assert.FileExists(t, filepath.Join(dir, "out", "formatted"), "post command runs in the output directory")

	cfg.Outputs[0].PostCommand = []string{"false"}
	require.NoError(t, os.Remove(cfg.Outputs[0].OutFile))
	err := service.GenerateFromConfig(cfg, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "post-command (false) failed")
}

func TestService_Generate_Fallback(t *testing.T) {
	dir := t.TempDir()
	spec := writeFixture(t, dir, "serverless.yml", createUserService)
	out := filepath.Join(dir, "main.tsp")

	service, _ := quietService()
	require.NoError(t, service.Generate(GenerateOptions{
		Fallback: FallbackOptions{Spec: spec, OutFile: out},
	}))
	assert.FileExists(t, out)

	err := service.Generate(GenerateOptions{})
	assert.Error(t, err)

	err = service.Generate(GenerateOptions{
		Fallback: FallbackOptions{Spec: spec, OutFile: out, Type: "graphql"},
	})
	assert.Error(t, err)
}

func TestService_UnsupportedOutputType(t *testing.T) {
	dir := t.TempDir()
	spec := writeFixture(t, dir, "serverless.yml", createUserService)
	cfg := &config.Config{
		Spec:    spec,
		Outputs: []config.Output{{Type: "graphql", OutFile: filepath.Join(dir, "x")}},
	}

	service, _ := quietService()
	err := service.GenerateFromConfig(cfg, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output type: graphql")
}

func TestResolveConfig(t *testing.T) {
	svc := mustService(t, `
custom:
  typespec:
    title: From Custom
    namespace: Custom
`)
	explicit := &config.Config{Namespace: "Explicit"}

	resolved := ResolveConfig(explicit, svc)
	assert.Equal(t, "From Custom", resolved.Title)
	assert.Equal(t, "Explicit", resolved.Namespace)
	assert.Equal(t, config.DefaultVersion, resolved.Version)
	assert.Empty(t, explicit.Title, "input config is not modified")

	assert.Equal(t, config.DefaultTitle, ResolveConfig(nil, nil).Title)
}

func TestRegistry_GetAvailableTypes(t *testing.T) {
	assert.Equal(t, []string{"openapi", "typespec"}, NewService().GetRegistry().GetAvailableTypes())
}

func TestBuildNodes_SkipOnlyS3(t *testing.T) {
	svc := mustService(t, `
functions:
  on-upload:
    events:
      - s3: uploads
`)
	nodes, err := BuildNodes(svc, Options{})
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestBuildNodes_ArrayAlias(t *testing.T) {
	nodes, err := BuildNodes(mustService(t, arrayService), Options{ArrayResponseMode: config.ArrayModeAlias})
	require.NoError(t, err)
	require.Len(t, nodes, 4)

	list := nodes[0].(ir.Operation)
	assert.Equal(t, ir.Ref{Name: "UserList"}, list.StatusResponses[0].Body)
	assert.Equal(t, ir.Alias{Name: "UserList", Type: ir.Array{Elem: ir.Ref{Name: "User"}}}, nodes[3])
}
