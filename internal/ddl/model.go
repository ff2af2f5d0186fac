package ddl

// Extension is a CREATE EXTENSION statement.
type Extension struct {
	Name string
	Line int // 1-based line of the statement in the dump
}

// EnumType is a CREATE TYPE ... AS ENUM statement.
// Values are the literal tokens in source order, quotes included.
type EnumType struct {
	Name   string
	Values []string
	Line   int
}

// Table is a CREATE TABLE statement. Body is the verbatim text between the
// outer parentheses, trimmed of surrounding whitespace.
type Table struct {
	Name string
	Body string
	Line int
}

// Index is a CREATE INDEX statement. Predicate keeps its enclosing
// parentheses and is empty when the index has no WHERE clause.
type Index struct {
	Name      string
	Table     string
	Method    string
	Columns   string
	Predicate string
	Line      int
}

// Constraint is an ALTER TABLE ONLY ... ADD CONSTRAINT statement.
type Constraint struct {
	Table      string
	Name       string
	Definition string
	Line       int
}

// Trigger is a CREATE TRIGGER statement.
type Trigger struct {
	Name       string
	Definition string
	Line       int
}

// Function is a CREATE OR REPLACE FUNCTION statement. Functions are counted
// but never emitted.
type Function struct {
	Name       string
	ReturnType string
	Line       int
}

// Statements holds one extraction pass, per category, in first-seen order.
type Statements struct {
	Extensions  []Extension
	EnumTypes   []EnumType
	Tables      []Table
	Indexes     []Index
	Constraints []Constraint
	Triggers    []Trigger
	Functions   []Function
}

// Counts is the per-category size of a Statements value.
type Counts struct {
	Extensions  int `json:"extensions"`
	EnumTypes   int `json:"types"`
	Tables      int `json:"tables"`
	Indexes     int `json:"indexes"`
	Constraints int `json:"constraints"`
	Triggers    int `json:"triggers"`
	Functions   int `json:"functions"`
}

// Counts returns the number of statements in each category.
func (s *Statements) Counts() Counts {
	return Counts{
		Extensions:  len(s.Extensions),
		EnumTypes:   len(s.EnumTypes),
		Tables:      len(s.Tables),
		Indexes:     len(s.Indexes),
		Constraints: len(s.Constraints),
		Triggers:    len(s.Triggers),
		Functions:   len(s.Functions),
	}
}

// Category names a statement kind.
type Category string

const (
	CategoryExtension  Category = "extension"
	CategoryEnumType   Category = "type"
	CategoryTable      Category = "table"
	CategoryIndex      Category = "index"
	CategoryConstraint Category = "constraint"
	CategoryTrigger    Category = "trigger"
	CategoryFunction   Category = "function"
)

// Duplicate reports a name seen more than once within one category.
// Duplicates point at a corrupt dump; they are reported, never dropped.
type Duplicate struct {
	Category Category
	Name     string
	Count    int
}

// Duplicates lists every repeated name per category, in category order and
// then first-seen order.
func (s *Statements) Duplicates() []Duplicate {
	var dups []Duplicate
	collect := func(cat Category, names []string) {
		counts := make(map[string]int, len(names))
		var order []string
		for _, n := range names {
			if counts[n] == 0 {
				order = append(order, n)
			}
			counts[n]++
		}
		for _, n := range order {
			if counts[n] > 1 {
				dups = append(dups, Duplicate{Category: cat, Name: n, Count: counts[n]})
			}
		}
	}

	names := make([]string, 0, len(s.Extensions))
	for _, e := range s.Extensions {
		names = append(names, e.Name)
	}
	collect(CategoryExtension, names)

	names = names[:0]
	for _, e := range s.EnumTypes {
		names = append(names, e.Name)
	}
	collect(CategoryEnumType, names)

	names = names[:0]
	for _, t := range s.Tables {
		names = append(names, t.Name)
	}
	collect(CategoryTable, names)

	names = names[:0]
	for _, i := range s.Indexes {
		names = append(names, i.Name)
	}
	collect(CategoryIndex, names)

	names = names[:0]
	for _, c := range s.Constraints {
		names = append(names, c.Table+"."+c.Name)
	}
	collect(CategoryConstraint, names)

	names = names[:0]
	for _, t := range s.Triggers {
		names = append(names, t.Name)
	}
	collect(CategoryTrigger, names)

	names = names[:0]
	for _, f := range s.Functions {
		names = append(names, f.Name)
	}
	collect(CategoryFunction, names)

	return dups
}
