package cli_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-autofixture/internal/cli"
	"github.com/goliatone/go-autofixture/pkg/jsonschema"
	"github.com/goliatone/go-autofixture/pkg/render"
)

var petSchema = filepath.Join("..", "..", "pkg", "jsonschema", "testdata", "pet.schema.json")

func decodeJSON(t *testing.T, payload string) []map[string]any {
	t.Helper()

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &records), payload)
	return records
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, cli.Options{}, "version")
	require.NoError(t, err)
	assert.Equal(t, "autofixture version dev\n", stdout)
}

func TestParse(t *testing.T) {
	stdout, _, err := execute(t, cli.Options{}, "parse", "string [ 8 ]", "4 < integer < 8", "skip")
	require.NoError(t, err)
	assert.Equal(t, "\"string [ 8 ]\"\tstring[8]\n\"4 < integer < 8\"\t4 < integer < 8\n\"skip\"\tskip\n", stdout)
}

func TestParse_ReportsInvalidSpecs(t *testing.T) {
	stdout, _, err := execute(t, cli.Options{}, "parse", "number >= 3", "boolean")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 specs are invalid")
	assert.Contains(t, stdout, "Invalid number autofixture spec: 'number >= 3'")
	assert.Contains(t, stdout, "\"boolean\"\tboolean")
}

func TestGenerate_FromDefinitionFile(t *testing.T) {
	path := writeFile(t, "pet.yaml", petDefinition)

	stdout, _, err := execute(t, cli.Options{}, "generate", "--file", path, "--count", "4", "--seed", "9")
	require.NoError(t, err)

	records := decodeJSON(t, stdout)
	require.Len(t, records, 4)
	for _, record := range records {
		assert.Len(t, record["name"], 10)
		age, ok := record["age"].(float64)
		require.True(t, ok, "age should be a number: %#v", record["age"])
		assert.GreaterOrEqual(t, age, 1.0)
		assert.LessOrEqual(t, age, 4.0)
		assert.Equal(t, age, float64(int(age)))

		owner, ok := record["owner"].(map[string]any)
		require.True(t, ok)
		assert.Len(t, owner["email"], 6)
	}
}

func TestGenerate_SeedIsReproducible(t *testing.T) {
	path := writeFile(t, "pet.yaml", petDefinition)

	first, _, err := execute(t, cli.Options{}, "generate", "-f", path, "--seed", "42")
	require.NoError(t, err)
	second, _, err := execute(t, cli.Options{}, "generate", "-f", path, "--seed", "42")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	t.Setenv("AUTOFIXTURE_SEED", "42")
	fromEnv, _, err := execute(t, cli.Options{}, "generate", "-f", path)
	require.NoError(t, err)
	assert.Equal(t, first, fromEnv)
}

func TestGenerate_EnvironmentDefaults(t *testing.T) {
	path := writeFile(t, "pet.yaml", petDefinition)
	t.Setenv("AUTOFIXTURE_COUNT", "2")
	t.Setenv("AUTOFIXTURE_FORMAT", "yaml")

	stdout, _, err := execute(t, cli.Options{}, "generate", "--file", path)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &records), stdout)
	assert.Len(t, records, 2)

	stdout, _, err = execute(t, cli.Options{}, "generate", "--file", path, "--format", "json", "-n", "1")
	require.NoError(t, err)
	assert.Len(t, decodeJSON(t, stdout), 1)
}

func TestGenerate_DefinitionCount(t *testing.T) {
	path := writeFile(t, "pet.yaml", "count: 5\n"+petDefinition)

	stdout, _, err := execute(t, cli.Options{}, "generate", "--file", path)
	require.NoError(t, err)
	assert.Len(t, decodeJSON(t, stdout), 5)
}

func TestGenerate_FromOpenAPI(t *testing.T) {
	doc := filepath.Join("..", "openapi", "testdata", "petstore.yaml")

	stdout, _, err := execute(t, cli.Options{}, "generate", "--openapi", doc, "--schema", "Pet", "-n", "6")
	require.NoError(t, err)

	records := decodeJSON(t, stdout)
	require.Len(t, records, 6)
	for _, record := range records {
		assert.Len(t, record["name"], 8)
		assert.NotContains(t, record, "secret")
		assert.NotContains(t, record, "parent")

		category, ok := record["category"].(map[string]any)
		require.True(t, ok)
		id := category["id"].(float64)
		assert.GreaterOrEqual(t, id, -10.0)
		assert.LessOrEqual(t, id, 10.0)
	}
}

func TestGenerate_FromJSONSchema(t *testing.T) {
	stdout, _, err := execute(t, cli.Options{}, "generate", "--jsonschema", petSchema, "-n", "4", "--seed", "9")
	require.NoError(t, err)

	records := decodeJSON(t, stdout)
	require.Len(t, records, 4)
	for _, record := range records {
		assert.Len(t, record["name"], 6)
		assert.NotContains(t, record, "token")

		owner, ok := record["owner"].(map[string]any)
		require.True(t, ok)
		assert.Len(t, owner["email"], 12)
		assert.NotContains(t, owner, "manager")
	}

	stdout, _, err = execute(t, cli.Options{}, "generate", "--jsonschema", petSchema, "--schema", "Person", "-n", "1")
	require.NoError(t, err)
	records = decodeJSON(t, stdout)
	require.Len(t, records, 1)
	assert.Contains(t, records[0], "score")
}

func TestGenerate_TemplateFormats(t *testing.T) {
	path := writeFile(t, "pet.yaml", petDefinition)
	tmpl := writeFile(t, "pets.txt", "{% for r in records %}{{ r.owner.email }}\n{% endfor %}")

	stdout, _, err := execute(t, cli.Options{}, "generate", "-f", path, "-n", "2", "--format", "template", "--template", tmpl)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Len(t, line, 6)
	}

	page := writeFile(t, "pets.html", `<p onclick="x()">{{ count }}</p><script>alert(1)</script>`)
	stdout, _, err = execute(t, cli.Options{}, "generate", "-f", path, "-n", "2", "--format", "html", "--template", page)
	require.NoError(t, err)
	assert.Equal(t, "<p>2</p>", stdout)
}

func TestGenerate_WritesOutputFile(t *testing.T) {
	path := writeFile(t, "pet.yaml", petDefinition)
	out := filepath.Join(t.TempDir(), "pets.json")

	stdout, stderr, err := execute(t, cli.Options{}, "generate", "-f", path, "-o", out, "--log-level", "info")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "fixtures written")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Len(t, decodeJSON(t, string(data)), 3)
}

func TestGenerate_DebugLogging(t *testing.T) {
	path := writeFile(t, "pet.yaml", petDefinition)
	t.Setenv("AUTOFIXTURE_LOG_LEVEL", "debug")

	_, stderr, err := execute(t, cli.Options{}, "generate", "-f", path, "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "generating fixtures")
	assert.Contains(t, stderr, "seed=")
}

func TestGenerate_Interactive(t *testing.T) {
	path := writeFile(t, "pet.yaml", petDefinition)
	driver := newScriptedDriver(map[string]string{
		"age":  "skip",
		"name": "string[3]",
	})

	stdout, _, err := execute(t, cli.Options{Prompt: driver}, "generate", "-f", path, "-i", "-n", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "name", "owner.email"}, driver.asked)

	for _, record := range decodeJSON(t, stdout) {
		assert.NotContains(t, record, "age")
		assert.Len(t, record["name"], 3)
		assert.Len(t, record["owner"].(map[string]any)["email"], 6)
	}
}

func TestGenerate_InteractiveOverwrite(t *testing.T) {
	path := writeFile(t, "pet.yaml", petDefinition)
	output := writeFile(t, "out.json", "keep")

	driver := newScriptedDriver(nil)
	_, _, err := execute(t, cli.Options{Prompt: driver}, "generate", "-f", path, "-i", "-o", output)
	require.Error(t, err)
	assert.True(t, cli.IsAborted(err))
	assert.Equal(t, []string{"Overwrite " + output + "?"}, driver.confirms)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))

	driver = newScriptedDriver(nil)
	driver.confirm = true
	_, _, err = execute(t, cli.Options{Prompt: driver}, "generate", "-f", path, "-i", "-o", output, "-n", "2")
	require.NoError(t, err)

	data, err = os.ReadFile(output)
	require.NoError(t, err)
	assert.Len(t, decodeJSON(t, string(data)), 2)
}

func TestGenerate_Errors(t *testing.T) {
	path := writeFile(t, "pet.yaml", petDefinition)
	badSpec := writeFile(t, "bad.yaml", "template: {name: \"\"}\nspecs: {name: number}\n")
	unknownField := writeFile(t, "unknown.yaml", "template: {name: \"\"}\nspecs: {nick: string}\n")

	tests := []struct {
		name    string
		args    []string
		env     map[string]string
		message string
		target  error
	}{
		{name: "no input", args: []string{"generate"}, message: "at least one of the flags"},
		{name: "both inputs", args: []string{"generate", "-f", path, "--openapi", "doc.yaml", "--schema", "Pet"}, message: "none of the others can be"},
		{name: "schema with file", args: []string{"generate", "-f", path, "--schema", "Pet"}, message: "--schema cannot be used with --file"},
		{name: "openapi without schema", args: []string{"generate", "--openapi", "doc.yaml"}, message: "--openapi requires --schema"},
		{name: "unknown definition", args: []string{"generate", "--jsonschema", petSchema, "--schema", "Cat"}, target: jsonschema.ErrDefinitionNotFound},
		{name: "missing file", args: []string{"generate", "-f", filepath.Join(t.TempDir(), "nope.yaml")}, message: "source: read"},
		{name: "unknown schema", args: []string{"generate", "--openapi", filepath.Join("..", "openapi", "testdata", "petstore.yaml"), "--schema", "Cat"}, message: `schema "Cat" not found`},
		{name: "unknown format", args: []string{"generate", "-f", path, "--format", "xml"}, target: render.ErrRendererNotFound},
		{name: "template without file", args: []string{"generate", "-f", path, "--format", "html"}, message: "--template is required"},
		{name: "zero count", args: []string{"generate", "-f", path, "-n", "0"}, message: "--count must be positive"},
		{name: "bad env", args: []string{"generate", "-f", path}, env: map[string]string{"AUTOFIXTURE_COUNT": "many"}, message: "parse env:"},
		{name: "bad log level", args: []string{"generate", "-f", path, "--log-level", "loud"}, message: "invalid level"},
		{name: "incompatible spec", args: []string{"generate", "-f", badSpec}, message: "AutoFixture spec 'number' not compatible with type 'string'"},
		{name: "unknown field", args: []string{"generate", "-f", unknownField}, message: "Autofixture specifies field 'nick' that is not in the type"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for key, value := range tc.env {
				t.Setenv(key, value)
			}
			_, _, err := execute(t, cli.Options{}, tc.args...)
			require.Error(t, err)
			if tc.target != nil {
				assert.True(t, errors.Is(err, tc.target), "expected %v, got %v", tc.target, err)
			}
			if tc.message != "" {
				assert.Contains(t, err.Error(), tc.message)
			}
		})
	}
}

func TestGenerate_InteractiveAbort(t *testing.T) {
	path := writeFile(t, "pet.yaml", petDefinition)
	driver := newScriptedDriver(nil)
	driver.err = cli.ErrAborted

	_, _, err := execute(t, cli.Options{Prompt: driver}, "generate", "-f", path, "-i")
	require.Error(t, err)
	assert.True(t, cli.IsAborted(err))
}
