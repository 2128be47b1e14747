package structure

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodsFunctionKeyword(t *testing.T) {
	clean := "function greet(name, suffix) {\n  print(name);\n  print(suffix);\n}"

	methods := NewRegexScanner().Methods(clean)
	require.Len(t, methods, 1)
	assert.Equal(t, "greet", methods[0].Name)
	assert.Equal(t, "name, suffix", methods[0].Params)
	assert.Equal(t, 2, methods[0].Lines)
}

func TestMethodsTypedHeader(t *testing.T) {
	clean := "public static int add(int a, int b) {\n  return a + b;\n}"

	methods := NewRegexScanner().Methods(clean)
	require.Len(t, methods, 1)
	assert.Equal(t, "add", methods[0].Name)
	assert.Equal(t, "int a, int b", methods[0].Params)
}

func TestMethodsSkipsControlKeywords(t *testing.T) {
	// "if (...)" and "return foo(...)" look like typed headers to the
	// pattern; the keyword filter must drop them.
	clean := "x = 1\nvoid else if (cond) {\n  y = 2\n}"

	for _, m := range NewRegexScanner().Methods(clean) {
		assert.NotEqual(t, "if", m.Name)
		assert.NotEqual(t, "return", m.Name)
	}
}

func TestMethodsEmptyParams(t *testing.T) {
	clean := "function run() {\n  go()\n}"

	methods := NewRegexScanner().Methods(clean)
	require.Len(t, methods, 1)
	assert.Equal(t, "", methods[0].Params)
}

func TestMethodsNoBraces(t *testing.T) {
	assert.Empty(t, NewRegexScanner().Methods("def f(x):\n    return x\n"))
}

func TestClasses(t *testing.T) {
	clean := "class Account extends Base {\n  a = 1\n  b = 2\n}"

	classes := NewRegexScanner().Classes(clean)
	require.Len(t, classes, 1)
	assert.Equal(t, "Account", classes[0].Name)
	assert.Equal(t, 2, classes[0].Lines)
}

func TestClassesBodyLineCount(t *testing.T) {
	body := strings.Repeat("  field();\n", 101)
	clean := "class Big {\n" + body + "}"

	classes := NewRegexScanner().Classes(clean)
	require.Len(t, classes, 1)
	assert.Equal(t, 101, classes[0].Lines)
}

func TestClassesMultiple(t *testing.T) {
	clean := "class A {\n  x\n}\nclass B {\n  y\n}"

	classes := NewRegexScanner().Classes(clean)
	require.Len(t, classes, 2)
	assert.Equal(t, "A", classes[0].Name)
	assert.Equal(t, "B", classes[1].Name)
}

func TestExtendsCount(t *testing.T) {
	s := NewRegexScanner()
	assert.Equal(t, 0, s.ExtendsCount("class A { }"))
	assert.Equal(t, 2, s.ExtendsCount("class A extends B { }\nclass C extends D { }"))
	assert.Equal(t, 0, s.ExtendsCount("extendsFoo bar"))
}
