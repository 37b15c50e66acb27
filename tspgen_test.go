package tspgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okonomi/serverless-typespec-generator/pkg/config"
	"github.com/okonomi/serverless-typespec-generator/pkg/serverless"
)

const usersService = `
service: users
provider:
  name: aws
  apiGateway:
    request:
      schemas:
        user:
          name: User
          schema:
            type: object
            properties:
              id: {type: string, description: Identifier}
              nickname: {type: string}
            required: [id]
functions:
  update-user:
    handler: users.update
    events:
      - http:
          method: put
          path: users/{id}
          request:
            schemas:
              application/json: user
            parameters:
              paths:
                id: true
          documentation:
            summary: Update a user
            methodResponses:
              - statusCode: 200
                responseModels:
                  application/json: user
              - statusCode: 404
                responseModels:
                  application/json: Missing
  on-upload:
    handler: upload.handler
    events:
      - s3: uploads
custom:
  typespec:
    title: Users API
    namespace: UsersApi
`

func TestGenerate(t *testing.T) {
	svc, err := serverless.Parse([]byte(usersService))
	require.NoError(t, err)

	out, err := Generate(svc, nil)
	require.NoError(t, err)

	expected := `import "@typespec/http";

using Http;

@service(#{ title: "Users API" })
namespace UsersApi;

@summary("Update a user")
@route("/users/{id}")
@put
op updateUser(@path id: string, @body body: User): {
  @statusCode statusCode: 200;
  @body body: User;
} | {
  @statusCode statusCode: 404;
  @body body: Missing;
};

model User {
  /** Identifier */
  id: string;
  nickname?: string;
}
`
	assert.Equal(t, expected, out)
	assert.Less(t, strings.Index(out, "op updateUser"), strings.Index(out, "model User"))
}

func TestGenerate_ExplicitConfigWins(t *testing.T) {
	svc, err := serverless.Parse([]byte(usersService))
	require.NoError(t, err)

	out, err := Generate(svc, &config.Config{Namespace: "Override"})
	require.NoError(t, err)
	assert.Contains(t, out, "namespace Override;")
	assert.Contains(t, out, `title: "Users API"`)
}

func TestGenerate_NilService(t *testing.T) {
	_, err := Generate(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no service definition")
}

func TestGenerateTypeSpec(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "serverless.yml")
	require.NoError(t, os.WriteFile(spec, []byte(usersService), 0o644))
	out := filepath.Join(dir, "tsp", "main.tsp")

	require.NoError(t, GenerateTypeSpec(spec, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "}\n"))
	assert.False(t, strings.HasSuffix(string(data), "\n\n"))
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "serverless.yml")
	require.NoError(t, os.WriteFile(spec, []byte(usersService), 0o644))

	err := Validate(spec)
	require.Error(t, err, "Missing is not a registered model")

	fixed := strings.Replace(usersService, "application/json: Missing", "application/json: user", 1)
	require.NoError(t, os.WriteFile(spec, []byte(fixed), 0o644))
	assert.NoError(t, Validate(spec))
}
