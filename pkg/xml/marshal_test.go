package xml

import "testing"

type person struct {
	ID   int      `xml:"id,attr"`
	Name string   `xml:"name"`
	Tags []string `xml:"tag"`
}

type note struct {
	Text string `xml:",chardata"`
}

func TestMarshalStructToMarkup(t *testing.T) {
	p := person{ID: 1, Name: "Alice", Tags: []string{"a", "b"}}
	got, err := Marshal(p, "person")
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `<person id="1"><name>Alice</name><tag>a</tag><tag>b</tag></person>`
	if string(got) != want {
		t.Fatalf("Marshal = %q, want %q", got, want)
	}
}

func TestMarshalChardataField(t *testing.T) {
	got, err := Marshal(note{Text: "hello"}, "note")
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(got) != `<note>hello</note>` {
		t.Fatalf("Marshal = %q, want <note>hello</note>", got)
	}
}

func TestMarshalRejectsNonStruct(t *testing.T) {
	if _, err := Marshal(42, "n"); err == nil {
		t.Fatal("Marshal(42, ...) returned nil error, want an error")
	}
}

type withOptional struct {
	Value string `xml:"value,omitempty"`
}

func TestMarshalOmitsEmptyField(t *testing.T) {
	got, err := Marshal(withOptional{}, "root")
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(got) != `<root/>` {
		t.Fatalf("Marshal = %q, want <root/>", got)
	}
}

type withSkipped struct {
	Kept   string `xml:"kept"`
	Hidden string `xml:"-"`
}

func TestMarshalSkipsDashTaggedField(t *testing.T) {
	got, err := Marshal(withSkipped{Kept: "yes", Hidden: "no"}, "root")
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `<root><kept>yes</kept></root>`
	if string(got) != want {
		t.Fatalf("Marshal = %q, want %q", got, want)
	}
}
