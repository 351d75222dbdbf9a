package ir

import (
	"errors"
	"testing"
)

func validAPI() *API {
	return &API{
		Types: []*TypeDecl{
			{
				Name:      "io.vertx.core.Vertx",
				Generated: "io.vertx.mutiny.core.Vertx",
				Methods: []*MethodDecl{
					{
						Name:    "close",
						Params:  []ParamDecl{{Name: "handler", Type: MustParseType("io.vertx.core.Handler<io.vertx.core.AsyncResult<java.lang.Void>>")}},
						Returns: Void(),
					},
				},
			},
		},
		External: []RegistryEntry{{Original: "io.vertx.core.buffer.Buffer", Generated: "io.vertx.mutiny.core.buffer.Buffer"}},
	}
}

func TestAPI_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*API)
		wantCode string
	}{
		{"valid", func(*API) {}, ""},
		{"missing generated", func(a *API) { a.Types[0].Generated = "" }, "missing_generated_name"},
		{"duplicate type", func(a *API) {
			a.External = append(a.External, RegistryEntry{Original: "io.vertx.core.Vertx", Generated: "x.Vertx"})
		}, "duplicate_type"},
		{"duplicate generated", func(a *API) {
			a.External = append(a.External, RegistryEntry{Original: "x.Other", Generated: "io.vertx.mutiny.core.Vertx"})
		}, "duplicate_generated_name"},
		{"missing return", func(a *API) { a.Types[0].Methods[0].Returns = nil }, "missing_return"},
		{"duplicate param", func(a *API) {
			m := a.Types[0].Methods[0]
			m.Params = append(m.Params, m.Params[0])
		}, "duplicate_param"},
		{"void param", func(a *API) { a.Types[0].Methods[0].Params[0].Type = Void() }, "void_param"},
		{"unnamed param", func(a *API) { a.Types[0].Methods[0].Params[0].Name = "" }, "missing_param_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := validAPI()
			tt.mutate(api)
			errs := api.Validate()
			if tt.wantCode == "" {
				if len(errs) != 0 {
					t.Fatalf("Validate() = %v, want no errors", errs)
				}
				return
			}
			found := false
			for _, err := range errs {
				var ve *ValidationError
				if errors.As(err, &ve) && ve.Code == tt.wantCode {
					found = true
				}
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("validation error %v does not match ErrInvalidInput", err)
				}
			}
			if !found {
				t.Errorf("Validate() = %v, want code %s", errs, tt.wantCode)
			}
		})
	}
}

func TestAPI_RegistryEntries(t *testing.T) {
	entries := validAPI().RegistryEntries()
	if len(entries) != 2 {
		t.Fatalf("RegistryEntries() length = %d, want 2", len(entries))
	}
	if entries[0].Original != "io.vertx.core.Vertx" || entries[1].Original != "io.vertx.core.buffer.Buffer" {
		t.Errorf("RegistryEntries() = %v", entries)
	}
}

func TestAPI_FindType(t *testing.T) {
	api := validAPI()
	if api.FindType("io.vertx.core.Vertx") == nil {
		t.Error("FindType() returned nil for declared type")
	}
	if api.FindType("io.vertx.core.Missing") != nil {
		t.Error("FindType() should return nil for unknown type")
	}
	if api.MethodCount() != 1 {
		t.Errorf("MethodCount() = %d, want 1", api.MethodCount())
	}
}
