package serverless

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleService = `
service: users-api
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
              id: {type: string}
        error-body:
          schema: {title: ErrorBody, type: object}
functions:
  zeta-handler:
    handler: zeta.handler
    events:
      - s3: my-bucket
  createUser:
    handler: users.create
    events:
      - http:
          method: post
          path: users/{id}
          request:
            schemas:
              application/json: user
            parameters:
              paths:
                id: true
                org:
                  required: false
                  description: Organisation
          documentation:
            summary: Create a user
            pathParams:
              - name: id
                description: The user id
            methodResponses:
              - statusCode: 201
                responseModels:
                  application/json: user
              - statusCode: "404"
            responses: [user]
  legacy:
    handler: legacy.handler
    events:
      - http: GET legacy
custom:
  typespec:
    title: Users API
    namespace: UsersApi
`

func TestParse(t *testing.T) {
	svc, err := Parse([]byte(sampleService))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Service != "users-api" {
		t.Errorf("Service = %q", svc.Service)
	}

	var names []string
	for name := range svc.Functions.All() {
		names = append(names, name)
	}
	if len(names) != 3 || names[0] != "zeta-handler" || names[1] != "createUser" || names[2] != "legacy" {
		t.Errorf("functions = %v, want source order", names)
	}

	schemas := svc.Provider.APIGateway.Request.Schemas
	if schemas.Len() != 2 {
		t.Fatalf("got %d provider schemas, want 2", schemas.Len())
	}
	user, _ := schemas.Get("user")
	if user.Name != "User" || user.Schema.Type != "object" {
		t.Errorf("user schema = %+v", user)
	}

	zeta, _ := svc.Functions.Get("zeta-handler")
	if zeta.Events[0].Type != "s3" || zeta.Events[0].HTTP != nil {
		t.Errorf("zeta event = %+v", zeta.Events[0])
	}

	create, _ := svc.Functions.Get("createUser")
	http := create.Events[0].HTTP
	if http == nil || http.Method != "post" || http.Path != "users/{id}" {
		t.Fatalf("http = %+v", http)
	}
	body, ok := http.Request.Schemas.Get("application/json")
	if !ok || body.Ref != "user" || body.Schema != nil {
		t.Errorf("request schema = %+v", body)
	}
	id, _ := http.Request.Parameters.Paths.Get("id")
	org, _ := http.Request.Parameters.Paths.Get("org")
	if !id.Required || org.Required || org.Description != "Organisation" {
		t.Errorf("path flags id=%+v org=%+v", id, org)
	}

	doc := http.Documentation
	if doc.Summary != "Create a user" || len(doc.PathParams) != 1 {
		t.Errorf("documentation = %+v", doc)
	}
	if len(doc.MethodResponses) != 2 || doc.MethodResponses[0].StatusCode != 201 || doc.MethodResponses[1].StatusCode != 404 {
		t.Errorf("methodResponses = %+v", doc.MethodResponses)
	}
	if doc.MethodResponses[1].ResponseModels.Len() != 0 {
		t.Error("404 response should have no models")
	}
	if len(doc.Responses) != 1 || doc.Responses[0] != "user" {
		t.Errorf("responses = %v", doc.Responses)
	}

	legacy, _ := svc.Functions.Get("legacy")
	if legacy.Events[0].HTTP.Placeholder != "GET legacy" {
		t.Errorf("placeholder = %q", legacy.Events[0].HTTP.Placeholder)
	}

	if svc.Custom.TypeSpec == nil || svc.Custom.TypeSpec.Title != "Users API" {
		t.Errorf("custom = %+v", svc.Custom.TypeSpec)
	}
}

func TestParse_InvalidStatusCode(t *testing.T) {
	_, err := Parse([]byte(`
functions:
  f:
    events:
      - http:
          method: get
          path: x
          documentation:
            methodResponses:
              - statusCode: ok
`))
	if err == nil {
		t.Fatal("expected error for non-numeric status code")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serverless.yml")
	if err := os.WriteFile(path, []byte(sampleService), 0o644); err != nil {
		t.Fatal(err)
	}
	svc, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if svc.Functions.Len() != 3 {
		t.Errorf("got %d functions, want 3", svc.Functions.Len())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for missing file")
	}
}
