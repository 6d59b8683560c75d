// Package tests runs the community test ROM suites against the
// emulator. The ROMs are not distributed with the emulator: point
// GAMEBOJ_ROMS at a directory laid out like roms/ below, or the suites
// are skipped. Setting GAMEBOJ_README writes the results as a markdown
// table to that file.
package tests

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// romDir returns the directory holding the test ROMs.
func romDir() string {
	if dir := os.Getenv("GAMEBOJ_ROMS"); dir != "" {
		return dir
	}
	return "roms"
}

func romFile(parts ...string) string {
	return filepath.Join(append([]string{romDir()}, parts...)...)
}

func Test_All(t *testing.T) {
	if _, err := os.Stat(romDir()); err != nil {
		t.Skipf("test ROMs not found: %v", err)
	}

	testTable := &TestTable{}
	testAcid2(testTable)
	testBlargg(testTable)
	testBully(testTable)
	testMooneye(t, testTable)

	// execute tests
	for _, top := range testTable.testSuites {
		t.Run(top.name, func(t *testing.T) {
			for _, collection := range top.collections {
				t.Run(collection.name, func(t *testing.T) {
					for _, test := range collection.tests {
						t.Run(test.Name(), test.Run)
					}
				})
			}
		})
	}

	if readme := os.Getenv("GAMEBOJ_README"); readme != "" {
		if err := os.WriteFile(readme, []byte(testTable.CreateReadme()), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// TestTable is a collection of many TestSuite(s).
type TestTable struct {
	// Top level tests
	testSuites []*TestSuite
}

func (t *TestTable) CreateReadme() string {
	var b strings.Builder

	// create the table of contents with links
	b.WriteString("# Table of Contents\n")
	for _, suite := range t.testSuites {
		fmt.Fprintf(&b, "* [%s](#%s)\n", suite.name, suite.name)
		for _, collection := range suite.collections {
			fmt.Fprintf(&b, "  * [%s](#%s)\n", collection.name, collection.name)
		}
	}

	// create the test results
	for _, suite := range t.testSuites {
		fmt.Fprintf(&b, "# %s\n", suite.name)
		for _, collection := range suite.collections {
			fmt.Fprintf(&b, "## %s\n", collection.name)
			b.WriteString(CreateMarkdownTableFromTests(collection.tests))
		}
	}
	return b.String()
}

// TestSuite is a collection of tests (often by a single author, or for a single
// feature) that can be run together.
type TestSuite struct {
	name        string
	collections []*TestCollection
}

func (t *TestSuite) NewTestCollection(name string) *TestCollection {
	collection := &TestCollection{name: name}
	t.collections = append(t.collections, collection)
	return collection
}

func (t *TestTable) NewTestSuite(name string) *TestSuite {
	suite := &TestSuite{name: name}
	t.testSuites = append(t.testSuites, suite)
	return suite
}

type TestCollection struct {
	tests []ROMTest
	name  string
}

func (t *TestCollection) Add(test ROMTest) {
	t.tests = append(t.tests, test)
}

type ROMTest interface {
	Run(t *testing.T)
	Passed() bool
	Name() string
}

func CreateMarkdownTableFromTests(tests []ROMTest) string {
	table := "| Test | Passing |\n| ---- | ------- |\n"
	for _, test := range tests {
		// pass is green check, fail is red x
		pass := "✅"
		if !test.Passed() {
			pass = "❌"
		}
		table += "| " + test.Name() + " | " + pass + " |\n"
	}
	return table
}
