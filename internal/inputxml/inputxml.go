// Package inputxml defines the raw XML structure of dotCover detailed
// coverage reports. Attributes are kept as strings and validated during
// processing, so schema violations surface as parser errors instead of
// silent zero values.
package inputxml

import "encoding/xml"

// RootXML mirrors the document element of a dotCover report.
type RootXML struct {
	XMLName         xml.Name       `xml:"Root"`
	ReportType      string         `xml:"ReportType,attr"`
	DotCoverVersion string         `xml:"DotCoverVersion,attr"`
	FileIndices     FileIndicesXML `xml:"FileIndices"`
	// Some report variants list the file table directly below the root.
	Files      []FileXML     `xml:"File"`
	Assemblies []AssemblyXML `xml:"Assembly"`
}

// FileIndicesXML wraps the global file table.
type FileIndicesXML struct {
	File []FileXML `xml:"File"`
}

// FileXML maps a numeric file id to a source file path.
type FileXML struct {
	Index string `xml:"Index,attr"`
	Name  string `xml:"Name,attr"`
}

// AssemblyXML holds the types of one assembly, either below namespaces or
// directly below the assembly for types without a namespace.
type AssemblyXML struct {
	Name       string         `xml:"Name,attr"`
	Namespaces []NamespaceXML `xml:"Namespace"`
	Types      []TypeXML      `xml:"Type"`
}

type NamespaceXML struct {
	Name  string    `xml:"Name,attr"`
	Types []TypeXML `xml:"Type"`
}

// TypeXML represents a class. Nested types stay part of the declaring
// class during processing, they are not classes of their own.
type TypeXML struct {
	Name       string        `xml:"Name,attr"`
	Types      []TypeXML     `xml:"Type"`
	Properties []PropertyXML `xml:"Property"`
	Events     []EventXML    `xml:"Event"`
	Methods    []MethodXML   `xml:"Method"`
}

// PropertyXML groups the getter and setter methods of a property.
type PropertyXML struct {
	Name    string      `xml:"Name,attr"`
	Methods []MethodXML `xml:"Method"`
}

// EventXML groups the add and remove methods of an event.
type EventXML struct {
	Name    string      `xml:"Name,attr"`
	Methods []MethodXML `xml:"Method"`
}

// MethodXML carries the method signature and its covered statements.
type MethodXML struct {
	Name       string         `xml:"Name,attr"`
	Statements []StatementXML `xml:"Statement"`
}

// StatementXML is one sequence point with its visit flag.
type StatementXML struct {
	FileIndex string `xml:"FileIndex,attr"`
	Line      string `xml:"Line,attr"`
	EndLine   string `xml:"EndLine,attr"`
	Column    string `xml:"Column,attr"`
	EndColumn string `xml:"EndColumn,attr"`
	Covered   string `xml:"Covered,attr"`
}
