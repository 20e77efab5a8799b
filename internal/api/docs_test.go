package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/99minutos/invoice-dashboard/docs"
)

// Routes served outside the documented API.
var undocumented = map[string]bool{
	"GET /metrics": true,
}

var (
	routerAnnotation = regexp.MustCompile(`@Router\s+(\S+)\s+\[(\w+)\]`)
	echoParam        = regexp.MustCompile(`:(\w+)`)
)

func documentedOperations(t *testing.T) []string {
	t.Helper()
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc); err != nil {
		t.Fatalf("swagger document is not valid JSON: %v", err)
	}
	var ops []string
	for path, methods := range doc.Paths {
		for method := range methods {
			ops = append(ops, strings.ToUpper(method)+" "+path)
		}
	}
	sort.Strings(ops)
	return ops
}

func annotatedOperations(t *testing.T) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("handler", "*.go"))
	if err != nil {
		t.Fatalf("glob handlers: %v", err)
	}
	var ops []string
	for _, f := range files {
		if strings.HasSuffix(f, "_test.go") {
			continue
		}
		src, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		for _, m := range routerAnnotation.FindAllStringSubmatch(string(src), -1) {
			ops = append(ops, strings.ToUpper(m[2])+" "+m[1])
		}
	}
	sort.Strings(ops)
	return ops
}

func routedOperations() []string {
	methods := map[string]bool{
		http.MethodGet: true, http.MethodPost: true, http.MethodPut: true,
		http.MethodPatch: true, http.MethodDelete: true,
	}
	var ops []string
	for _, r := range newTestRouter(&fakeAccountService{}).Routes() {
		// Skips group catch-alls and the swagger UI wildcard.
		if !methods[r.Method] || strings.HasSuffix(r.Path, "/*") {
			continue
		}
		// echo ":id" params are written "{id}" in swagger paths.
		path := echoParam.ReplaceAllString(r.Path, "{$1}")
		op := r.Method + " " + path
		if !undocumented[op] {
			ops = append(ops, op)
		}
	}
	sort.Strings(ops)
	return ops
}

func TestSwaggerDocument_MatchesRoutesAndAnnotations(t *testing.T) {
	documented := documentedOperations(t)
	annotated := annotatedOperations(t)
	routed := routedOperations()

	if strings.Join(documented, "\n") != strings.Join(routed, "\n") {
		t.Errorf("swagger document out of date with the router (run go generate ./cmd/server)\ndocumented:\n%s\nrouted:\n%s",
			strings.Join(documented, "\n"), strings.Join(routed, "\n"))
	}
	if strings.Join(annotated, "\n") != strings.Join(routed, "\n") {
		t.Errorf("@Router annotations out of date with the router\nannotated:\n%s\nrouted:\n%s",
			strings.Join(annotated, "\n"), strings.Join(routed, "\n"))
	}
}
