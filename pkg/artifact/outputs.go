// SPDX-License-Identifier: MPL-2.0

package artifact

// Outputs holds at most one path per artifact kind. Only the kinds selected
// in the EmitOptions it was computed from are non-empty.
type Outputs struct {
	AssemblyName      string
	BitcodeName       string
	CHeaderName       string
	CSourceName       string
	StmtName          string
	StmtHTMLName      string
	ObjectName        string
	StaticLibraryName string
}

// Path returns the path planned for kind k, or "" when k was not requested.
func (o Outputs) Path(k Kind) string {
	switch k {
	case Assembly:
		return o.AssemblyName
	case Bitcode:
		return o.BitcodeName
	case CSource:
		return o.CSourceName
	case Header:
		return o.CHeaderName
	case StmtHTML:
		return o.StmtHTMLName
	case Object:
		return o.ObjectName
	case StaticLibrary:
		return o.StaticLibraryName
	case Stmt:
		return o.StmtName
	}
	return ""
}

// Paths returns every planned path in AllKinds order.
func (o Outputs) Paths() []string {
	var paths []string
	for _, k := range AllKinds {
		if p := o.Path(k); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// Requested returns the kinds that have a planned path, in AllKinds order.
func (o Outputs) Requested() []Kind {
	var kinds []Kind
	for _, k := range AllKinds {
		if o.Path(k) != "" {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
