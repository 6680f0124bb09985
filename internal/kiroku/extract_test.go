package kiroku

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInit(t *testing.T, values map[string]string) {
	t.Helper()
	cfg := &Config{Values: make(map[string]string)}
	for k, v := range values {
		cfg.Values[k] = v
	}
	initConfig(cfg)
}

const (
	testCompileLine = defaultCompilePrefix + "-O -o main.o Sources/Action/main.swift"
	testLinkLine    = defaultLinkPrefix + " .build/release/Action.build/main.swift.o"
)

func TestExtractBothCommands(t *testing.T) {
	testInit(t, nil)

	lines := []string{
		"Compile Swift Module 'Action' (1 sources)",
		testCompileLine,
		"Linking ./.build/release/Action",
		testLinkLine,
	}

	ext := NewExtractor().Extract(lines)
	require.True(t, ext.CompileFound)
	require.True(t, ext.LinkFound)

	// The suppress-warnings policy is applied to the compile command,
	// exactly once, and never to the link command.
	assert.Equal(t, testCompileLine+" -suppress-warnings", ext.Compile)
	assert.Equal(t, 1, strings.Count(ext.Compile, "-suppress-warnings"))
	assert.Equal(t, testLinkLine, ext.Link)
}

func TestExtractReversedOrder(t *testing.T) {
	testInit(t, nil)

	// Category extraction is order-independent: link before compile
	// yields the same result.
	lines := []string{testLinkLine, testCompileLine}

	ext := NewExtractor().Extract(lines)
	require.True(t, ext.CompileFound)
	require.True(t, ext.LinkFound)
	assert.Equal(t, testCompileLine+" -suppress-warnings", ext.Compile)
	assert.Equal(t, testLinkLine, ext.Link)
}

func TestExtractLinkOnly(t *testing.T) {
	testInit(t, nil)

	lines := []string{"noise", testLinkLine, "more noise"}

	ext := NewExtractor().Extract(lines)
	assert.False(t, ext.CompileFound)
	assert.True(t, ext.LinkFound)
}

func TestExtractMissingBoth(t *testing.T) {
	testInit(t, nil)

	ext := NewExtractor().Extract([]string{"swift-driver version 1.62", ""})
	assert.False(t, ext.CompileFound)
	assert.False(t, ext.LinkFound)
}

func TestExtractFirstMatchWins(t *testing.T) {
	testInit(t, nil)

	first := defaultCompilePrefix + "-O first.swift"
	second := defaultCompilePrefix + "-Onone second.swift"
	lines := []string{first, second, testLinkLine, testLinkLine + " trailing"}

	ext := NewExtractor().Extract(lines)
	require.True(t, ext.CompileFound)
	assert.Equal(t, first+" -suppress-warnings", ext.Compile)
	assert.Equal(t, testLinkLine, ext.Link)
}

func TestExtractSuppressWarningsDisabled(t *testing.T) {
	testInit(t, map[string]string{"KIROKU_SUPPRESS_WARNINGS": "0"})

	ext := NewExtractor().Extract([]string{testCompileLine, testLinkLine})
	require.True(t, ext.CompileFound)
	assert.Equal(t, testCompileLine, ext.Compile)
}

func TestExtractCustomPrefixes(t *testing.T) {
	testInit(t, map[string]string{
		"KIROKU_COMPILE_PREFIX": "cc -c ",
		"KIROKU_LINK_PREFIX":    "cc -o ",
	})

	ext := NewExtractor().Extract([]string{"cc -c main.c", "cc -o app main.o"})
	require.True(t, ext.CompileFound)
	require.True(t, ext.LinkFound)
	assert.Equal(t, "cc -c main.c -suppress-warnings", ext.Compile)
	assert.Equal(t, "cc -o app main.o", ext.Link)
}

func TestPrefixMatcherExactByteMatch(t *testing.T) {
	m := prefixMatcher("compile", "/usr/bin/swiftc -module-name Action ", nil)

	assert.True(t, m.Match("/usr/bin/swiftc -module-name Action -O foo.swift"))
	// Case-sensitive, no tokenization.
	assert.False(t, m.Match("/usr/bin/swiftc -module-name action -O foo.swift"))
	assert.False(t, m.Match(" /usr/bin/swiftc -module-name Action -O foo.swift"))
}
