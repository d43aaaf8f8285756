/*
Copyright (C) 2024-2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// insngen writes the instruction name table of package lir from the
// InsnType constants, so names and opcodes cannot drift apart.
//
// Usage (from lir/, see the go:generate line in insn_type.go):
//   go run ../tools/insngen                       # print the table
//   go run ../tools/insngen -patch insn_names.go   # rewrite the file
package main

import (
	"bytes"
	"fmt"
	"go/constant"
	"go/format"
	"go/types"
	"os"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

const typeName = "InsnType"
const prefix = "Insn"
const sentinel = "NrInsnTypes"

// acronyms first, so XMMXMM splits into xmm_xmm
var token = regexp.MustCompile(`XMM[0-9]*|FPU[0-9]*|GPR|EAX|IC|[A-Z][a-z]+[0-9]*|[A-Z][0-9]*`)

// insnName turns InsnMovsdXMMMemlocal into movsd_xmm_memlocal.
func insnName(ident string) string {
	parts := token.FindAllString(strings.TrimPrefix(ident, prefix), -1)
	for i := range parts {
		parts[i] = strings.ToLower(parts[i])
	}
	return strings.Join(parts, "_")
}

type insnConst struct {
	ident string
	value int64
}

func collect(pkg *packages.Package) ([]insnConst, error) {
	scope := pkg.Types.Scope()
	var result []insnConst
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok || name == sentinel {
			continue
		}
		named, ok := c.Type().(*types.Named)
		if !ok || named.Obj().Name() != typeName {
			continue
		}
		v, exact := constant.Int64Val(c.Val())
		if !exact {
			return nil, fmt.Errorf("%s: value out of range", name)
		}
		result = append(result, insnConst{name, v})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].value < result[j].value })
	for i, c := range result {
		if c.value != int64(i) {
			return nil, fmt.Errorf("%s: expected value %d, got %d (gap in %s)", c.ident, i, c.value, typeName)
		}
	}
	return result, nil
}

func generate(pkgName string, consts []insnConst) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "// Code generated by insngen. DO NOT EDIT.\n\npackage %s\n\n", pkgName)
	fmt.Fprintf(&b, "var insnNames = [%s]string{\n", sentinel)
	for _, c := range consts {
		fmt.Fprintf(&b, "\t%s: %q,\n", c.ident, insnName(c.ident))
	}
	b.WriteString("}\n")
	return format.Source(b.Bytes())
}

func main() {
	patch := ""
	for i := 1; i < len(os.Args); i++ {
		if os.Args[i] == "-patch" && i+1 < len(os.Args) {
			patch = os.Args[i+1]
			i++
		} else {
			fmt.Fprintf(os.Stderr, "usage: insngen [-patch <file.go>]\n")
			os.Exit(1)
		}
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load package: %v\n", err)
		os.Exit(1)
	}
	if len(pkgs) == 0 {
		fmt.Fprintf(os.Stderr, "no packages found\n")
		os.Exit(1)
	}
	pkg := pkgs[0]
	// a missing insnNames entry is a type error we are about to fix, so
	// only the constants have to type check
	if pkg.Types == nil {
		for _, e := range pkg.Errors {
			fmt.Fprintf(os.Stderr, "  %v\n", e)
		}
		os.Exit(1)
	}

	consts, err := collect(pkg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	src, err := generate(pkg.Name, consts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "format: %v\n", err)
		os.Exit(1)
	}
	if patch == "" {
		os.Stdout.Write(src)
		return
	}
	if err := os.WriteFile(patch, src, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "wrote %d instruction names to %s\n", len(consts), patch)
}
