// Package models holds the plain data types produced by hierarchy
// analysis: smell reports, graph and tree projections, and their
// serialization forms.
package models

import (
	"fmt"
	"time"
)

// OverriddenMethod is a method name defined in more than one class of the
// hierarchy. Classes are listed in canonical discovery order.
type OverriddenMethod struct {
	Name    string   `json:"name"`
	Classes []string `json:"classes"`
}

// UnreachableMethod is an overridden method's implementation that the
// resolution order can never select.
type UnreachableMethod struct {
	Class  string `json:"class"`
	Method string `json:"method"`
}

// String renders the conventional Class::method form.
func (u UnreachableMethod) String() string {
	return fmt.Sprintf("%s::%s", u.Class, u.Method)
}

// ExportedMethod is a method whose true implementation lives somewhere
// other than the class it is visible through - an imported function
// masquerading as a method.
type ExportedMethod struct {
	Class  string `json:"class"`
	Method string `json:"method"`
	Origin string `json:"origin"`
}

// ReportSummary provides aggregate counts for a hierarchy report.
type ReportSummary struct {
	Classes             int `json:"classes"`
	Paths               int `json:"paths"`
	OverriddenMethods   int `json:"overridden_methods"`
	UnreachableMethods  int `json:"unreachable_methods"`
	MultipleInheritance int `json:"multiple_inheritance"`
	ExportedMethods     int `json:"exported_methods"`
}

// HierarchyReport is the composed result of all four smell detectors for
// one analysis session.
type HierarchyReport struct {
	GeneratedAt         time.Time           `json:"generated_at"`
	Target              string              `json:"target"`
	Fingerprint         string              `json:"fingerprint,omitempty"`
	Summary             ReportSummary       `json:"summary"`
	Overridden          []OverriddenMethod  `json:"overridden"`
	Unreachable         []UnreachableMethod `json:"unreachable"`
	MultipleInheritance []string            `json:"multiple_inheritance"`
	Exported            []ExportedMethod    `json:"exported"`
}

// BatchReport aggregates per-root reports and the merged graph view for a
// namespace analysis.
type BatchReport struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Namespace   string             `json:"namespace"`
	Roots       []string           `json:"roots"`
	Reports     []*HierarchyReport `json:"reports"`
	Graph       *InheritanceGraph  `json:"graph"`
}
