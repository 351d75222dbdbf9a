// Package testfixtures provides a Vert.x-shaped API used for testing the
// shimgen packages.
package testfixtures

import (
	"github.com/broady/shimgen/ir"
)

// Original and generated names of the fixture types.
const (
	Buffer       ir.QualifiedName = "io.vertx.core.buffer.Buffer"
	AsyncFile    ir.QualifiedName = "io.vertx.core.file.AsyncFile"
	FileSystem   ir.QualifiedName = "io.vertx.core.file.FileSystem"
	AsyncMap     ir.QualifiedName = "io.vertx.core.shareddata.AsyncMap"
	Vertx        ir.QualifiedName = "io.vertx.core.Vertx"
	Consumer     ir.QualifiedName = "io.vertx.core.eventbus.MessageConsumer"
	HttpClient   ir.QualifiedName = "io.vertx.core.http.HttpClient"
	HttpResponse ir.QualifiedName = "io.vertx.core.http.HttpClientResponse"

	GenBuffer       ir.QualifiedName = "io.vertx.mutiny.core.buffer.Buffer"
	GenAsyncFile    ir.QualifiedName = "io.vertx.mutiny.core.file.AsyncFile"
	GenFileSystem   ir.QualifiedName = "io.vertx.mutiny.core.file.FileSystem"
	GenHttpResponse ir.QualifiedName = "io.vertx.mutiny.core.http.HttpClientResponse"
)

// T parses a type expression and panics on error.
func T(s string) *ir.TypeRef {
	return ir.MustParseType(s)
}

// Entries are the registry pairs of the fixture API, including the
// external ones.
func Entries() []ir.RegistryEntry {
	return API().RegistryEntries()
}

// API returns a fresh copy of the fixture API.
func API() *ir.API {
	deprecated := "use write(Buffer) instead"
	return &ir.API{
		Types: []*ir.TypeDecl{
			{
				Name:      Buffer,
				Generated: GenBuffer,
				Doc:       ir.Documentation{Summary: "Most data is shuffled around inside Vert.x using buffers."},
				Methods: []*ir.MethodDecl{
					{Name: "appendString", Params: []ir.ParamDecl{{Name: "str", Type: T("java.lang.String")}}, Returns: T("io.vertx.core.buffer.Buffer"), Fluent: true},
					{Name: "length", Returns: T("int")},
					{Name: "getBytes", Returns: T("byte[]")},
					{Name: "buffer", Params: []ir.ParamDecl{{Name: "string", Type: T("java.lang.String")}}, Returns: T("io.vertx.core.buffer.Buffer"), Static: true},
				},
			},
			{
				Name:      AsyncFile,
				Generated: GenAsyncFile,
				Methods: []*ir.MethodDecl{
					{
						Name: "read",
						Params: []ir.ParamDecl{
							{Name: "buffer", Type: T("io.vertx.core.buffer.Buffer")},
							{Name: "offset", Type: T("int")},
							{Name: "position", Type: T("long")},
							{Name: "length", Type: T("int")},
							{Name: "handler", Type: T("io.vertx.core.Handler<io.vertx.core.AsyncResult<io.vertx.core.buffer.Buffer>>")},
						},
						Returns: T("io.vertx.core.file.AsyncFile"),
						Fluent:  true,
					},
					{Name: "write", Params: []ir.ParamDecl{{Name: "data", Type: T("io.vertx.core.buffer.Buffer")}}, Returns: T("io.vertx.core.Future<java.lang.Void>")},
					{
						Name:    "write",
						Params:  []ir.ParamDecl{{Name: "data", Type: T("io.vertx.core.buffer.Buffer")}, {Name: "handler", Type: T("io.vertx.core.Handler<io.vertx.core.AsyncResult<java.lang.Void>>")}},
						Returns: T("void"),
						Doc:     ir.Documentation{Summary: "Write data.", Deprecated: &deprecated},
					},
					{Name: "handler", Params: []ir.ParamDecl{{Name: "handler", Type: T("io.vertx.core.Handler<io.vertx.core.buffer.Buffer?>")}}, Returns: T("io.vertx.core.file.AsyncFile"), Fluent: true},
					{Name: "endHandler", Params: []ir.ParamDecl{{Name: "endHandler", Type: T("io.vertx.core.Handler<java.lang.Void>")}}, Returns: T("io.vertx.core.file.AsyncFile"), Fluent: true},
					{Name: "toReadStream", Returns: T("io.vertx.core.streams.ReadStream<io.vertx.core.buffer.Buffer>")},
				},
			},
			{
				Name:      FileSystem,
				Generated: GenFileSystem,
				Methods: []*ir.MethodDecl{
					{
						Name:    "readFile",
						Params:  []ir.ParamDecl{{Name: "path", Type: T("java.lang.String")}, {Name: "handler", Type: T("io.vertx.core.Handler<io.vertx.core.AsyncResult<io.vertx.core.buffer.Buffer>>")}},
						Returns: T("io.vertx.core.file.FileSystem"),
						Fluent:  true,
					},
					{Name: "readDir", Params: []ir.ParamDecl{{Name: "dir", Type: T("java.lang.String")}}, Returns: T("io.vertx.core.Future<java.util.List<java.lang.String>>")},
					{Name: "open", Params: []ir.ParamDecl{{Name: "path", Type: T("java.lang.String")}, {Name: "options", Type: T("io.vertx.core.file.OpenOptions")}}, Returns: T("io.vertx.core.Future<io.vertx.core.file.AsyncFile>")},
					{Name: "writeFiles", Params: []ir.ParamDecl{{Name: "files", Type: T("java.util.Map<java.lang.String, io.vertx.core.buffer.Buffer>")}}, Returns: T("io.vertx.core.Future<java.lang.Void>")},
				},
			},
			{
				Name:       AsyncMap,
				Generated:  "io.vertx.mutiny.core.shareddata.AsyncMap",
				TypeParams: []string{"K", "V"},
				Methods: []*ir.MethodDecl{
					{Name: "get", Params: []ir.ParamDecl{{Name: "k", Type: T("K")}, {Name: "resultHandler", Type: T("io.vertx.core.Handler<io.vertx.core.AsyncResult<V>>")}}, Returns: T("void")},
					{Name: "keys", Returns: T("io.vertx.core.Future<java.util.Set<K>>")},
				},
			},
			{
				Name:      Vertx,
				Generated: "io.vertx.mutiny.core.Vertx",
				Methods: []*ir.MethodDecl{
					{Name: "vertx", Returns: T("io.vertx.core.Vertx"), Static: true},
					{Name: "fileSystem", Returns: T("io.vertx.core.file.FileSystem")},
					{Name: "setTimer", Params: []ir.ParamDecl{{Name: "delay", Type: T("long")}, {Name: "handler", Type: T("io.vertx.core.Handler<java.lang.Long>")}}, Returns: T("long")},
					{Name: "runOnContext", Params: []ir.ParamDecl{{Name: "action", Type: T("io.vertx.core.Handler<java.lang.Void>")}}, Returns: T("void")},
					{
						Name:    "executeBlocking",
						Params:  []ir.ParamDecl{{Name: "blockingCodeHandler", Type: T("java.util.function.Supplier<io.vertx.core.Future<io.vertx.core.buffer.Buffer>>")}},
						Returns: T("io.vertx.core.Future<io.vertx.core.buffer.Buffer>"),
					},
				},
			},
			{
				Name:       Consumer,
				Generated:  "io.vertx.mutiny.core.eventbus.MessageConsumer",
				TypeParams: []string{"T"},
				Methods: []*ir.MethodDecl{
					{Name: "bodyStream", Returns: T("io.vertx.core.streams.ReadStream<T>")},
					{Name: "unregister", Returns: T("io.vertx.core.Future<java.lang.Void>")},
				},
			},
			{
				Name:      HttpClient,
				Generated: "io.vertx.mutiny.core.http.HttpClient",
				Methods: []*ir.MethodDecl{
					{
						Name:    "redirectHandler",
						Params:  []ir.ParamDecl{{Name: "handler", Type: T("java.util.function.Function<io.vertx.core.http.HttpClientResponse, io.vertx.core.Future<io.vertx.core.http.RequestOptions>>")}},
						Returns: T("io.vertx.core.http.HttpClient"),
						Fluent:  true,
					},
					{
						Name:    "send",
						Params:  []ir.ParamDecl{{Name: "options", Type: T("io.vertx.core.http.RequestOptions")}, {Name: "body", Type: T("io.vertx.core.streams.ReadStream<io.vertx.core.buffer.Buffer>")}},
						Returns: T("io.vertx.core.Future<io.vertx.core.http.HttpClientResponse>"),
					},
				},
			},
		},
		External: []ir.RegistryEntry{
			{Original: HttpResponse, Generated: GenHttpResponse},
		},
	}
}
