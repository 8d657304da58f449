package main

import (
	"reflect"
	"testing"
)

func TestBaseArgs_Minimal(t *testing.T) {
	got := baseArgs(&Options{}, "/proj/build")
	want := []string{"-p=/proj/build", "-quiet"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("baseArgs = %v, want %v", got, want)
	}
}

func TestBaseArgs_Full(t *testing.T) {
	opts := &Options{
		Checks:           "modernize-*,bugprone-*",
		HeaderFilter:     ".*",
		WarningsAsErrors: "*",
		ExtraArgsBefore:  []string{"-Ivendor"},
		ExtraArgs:        []string{"-std=c++20"},
		Fix:              true,
		FormatStyle:      "file",
		PassThrough:      []string{"-export-fixes", "fixes.yaml"},
	}
	got := baseArgs(opts, "/b")
	want := []string{
		"-p=/b", "-quiet",
		"-checks=modernize-*,bugprone-*",
		"-header-filter=.*",
		"-warnings-as-errors=*",
		"--extra-arg-before", "-Ivendor",
		"--extra-arg", "-std=c++20",
		"-fix",
		"-format-style=file",
		"-export-fixes", "fixes.yaml",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("baseArgs = %v, want %v", got, want)
	}
}

func TestBaseArgs_FixWithoutStyle(t *testing.T) {
	got := baseArgs(&Options{Fix: true}, "/b")
	want := []string{"-p=/b", "-quiet", "-fix"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("baseArgs = %v, want %v", got, want)
	}
}

func TestBaseArgs_NoFixNoStyle(t *testing.T) {
	// format-style only applies together with -fix.
	got := baseArgs(&Options{FormatStyle: "file"}, "/b")
	want := []string{"-p=/b", "-quiet"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("baseArgs = %v, want %v", got, want)
	}
}

func TestClangTidyExecutable_EnvOverride(t *testing.T) {
	t.Setenv("CLANG_TIDY", "/opt/llvm/bin/clang-tidy")
	if got := clangTidyExecutable(); got != "/opt/llvm/bin/clang-tidy" {
		t.Errorf("clangTidyExecutable = %q, want the CLANG_TIDY override", got)
	}
}

func TestBuildInvocations_OnePerFile(t *testing.T) {
	t.Setenv("CLANG_TIDY", "/usr/bin/clang-tidy")
	files := []string{"a.cpp", "src/b.cc"}
	invs := buildInvocations(&Options{Checks: "bugprone-*"}, "/b", files)

	if len(invs) != len(files) {
		t.Fatalf("got %d invocations, want %d", len(invs), len(files))
	}
	for i, inv := range invs {
		if inv.File != files[i] {
			t.Errorf("invocation %d bound to %q, want %q", i, inv.File, files[i])
		}
		if inv.Path != "/usr/bin/clang-tidy" {
			t.Errorf("invocation %d path = %q", i, inv.Path)
		}
		if last := inv.Args[len(inv.Args)-1]; last != files[i] {
			t.Errorf("file must be the final argument, got %q", last)
		}
	}
}

func TestBuildInvocations_SharedBaseNotAliased(t *testing.T) {
	t.Setenv("CLANG_TIDY", "/usr/bin/clang-tidy")
	invs := buildInvocations(&Options{}, "/b", []string{"a.cpp", "b.cpp"})

	invs[0].Args[0] = "mutated"
	if invs[1].Args[0] == "mutated" {
		t.Error("invocations share a backing argument array")
	}
}
