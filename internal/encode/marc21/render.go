package marc21

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/brendan-oconnell/thoth/internal/model"
)

const (
	subfieldDelimiter = 0x1f
	fieldTerminator   = 0x1e
	recordTerminator  = 0x1d
)

// RecordEncoder renders ISO 2709 interchange records (marc21record::thoth).
type RecordEncoder struct{}

// NewRecord returns the marc21record::thoth encoder.
func NewRecord() *RecordEncoder { return &RecordEncoder{} }

func (e *RecordEncoder) Encode(works []model.Work) ([]byte, error) {
	var out bytes.Buffer
	for i := range works {
		fields, err := buildFields(&works[i])
		if err != nil {
			return nil, err
		}
		out.Write(renderBinary(fields))
	}
	return out.Bytes(), nil
}

func renderBinary(fields []field) []byte {
	var directory, data bytes.Buffer
	for _, f := range fields {
		start := data.Len()
		if f.control != "" {
			data.WriteString(f.control)
		} else {
			data.WriteByte(f.ind1)
			data.WriteByte(f.ind2)
			for _, s := range f.subfields {
				data.WriteByte(subfieldDelimiter)
				data.WriteByte(s.code)
				data.WriteString(s.value)
			}
		}
		data.WriteByte(fieldTerminator)
		fmt.Fprintf(&directory, "%s%04d%05d", f.tag, data.Len()-start, start)
	}
	directory.WriteByte(fieldTerminator)

	base := leaderLength + directory.Len()
	total := base + data.Len() + 1
	record := make([]byte, 0, total)
	record = append(record, leader(total, base)...)
	record = append(record, directory.Bytes()...)
	record = append(record, data.Bytes()...)
	record = append(record, recordTerminator)
	return record
}

const leaderLength = 24

// leader builds the 24-byte record label: monographic language material,
// Unicode, full record lengths filled in.
func leader(total, base int) []byte {
	return []byte(fmt.Sprintf("%05dnam a22%05d i 4500", total, base))
}

// displayLeader is the leader used by the non-interchange renderings, where
// octet lengths are meaningless.
const displayLeader = "00000nam a2200000 i 4500"

// MarkupEncoder renders the mnemonic text form (marc21markup::thoth), one
// field per line, records separated by a blank line.
type MarkupEncoder struct{}

// NewMarkup returns the marc21markup::thoth encoder.
func NewMarkup() *MarkupEncoder { return &MarkupEncoder{} }

func (e *MarkupEncoder) Encode(works []model.Work) ([]byte, error) {
	var out bytes.Buffer
	for i := range works {
		fields, err := buildFields(&works[i])
		if err != nil {
			return nil, err
		}
		if i > 0 {
			out.WriteString("\n")
		}
		renderMarkup(&out, fields)
	}
	return out.Bytes(), nil
}

func renderMarkup(out *bytes.Buffer, fields []field) {
	fmt.Fprintf(out, "=LDR  %s\n", displayLeader)
	for _, f := range fields {
		if f.control != "" {
			fmt.Fprintf(out, "=%s  %s\n", f.tag, strings.ReplaceAll(f.control, " ", `\`))
			continue
		}
		fmt.Fprintf(out, "=%s  %c%c", f.tag, markupIndicator(f.ind1), markupIndicator(f.ind2))
		for _, s := range f.subfields {
			fmt.Fprintf(out, "$%c%s", s.code, s.value)
		}
		out.WriteString("\n")
	}
}

func markupIndicator(b byte) byte {
	if b == ' ' {
		return '\\'
	}
	return b
}

// MARCXML (loc.gov MARC21 slim) shapes.

type xmlCollection struct {
	XMLName   xml.Name    `xml:"collection"`
	Namespace string      `xml:"xmlns,attr"`
	Records   []xmlRecord `xml:"record"`
}

type xmlRecord struct {
	Leader        string            `xml:"leader"`
	ControlFields []xmlControlField `xml:"controlfield"`
	DataFields    []xmlDataField    `xml:"datafield"`
}

type xmlControlField struct {
	Tag   string `xml:"tag,attr"`
	Value string `xml:",chardata"`
}

type xmlDataField struct {
	Tag       string        `xml:"tag,attr"`
	Ind1      string        `xml:"ind1,attr"`
	Ind2      string        `xml:"ind2,attr"`
	Subfields []xmlSubfield `xml:"subfield"`
}

type xmlSubfield struct {
	Code  string `xml:"code,attr"`
	Value string `xml:",chardata"`
}

// XMLEncoder renders MARCXML (marc21xml::thoth).
type XMLEncoder struct{}

// NewXML returns the marc21xml::thoth encoder.
func NewXML() *XMLEncoder { return &XMLEncoder{} }

func (e *XMLEncoder) Encode(works []model.Work) ([]byte, error) {
	collection := xmlCollection{Namespace: "http://www.loc.gov/MARC21/slim"}
	for i := range works {
		fields, err := buildFields(&works[i])
		if err != nil {
			return nil, err
		}
		record := xmlRecord{Leader: displayLeader}
		for _, f := range fields {
			if f.control != "" {
				record.ControlFields = append(record.ControlFields, xmlControlField{Tag: f.tag, Value: f.control})
				continue
			}
			df := xmlDataField{Tag: f.tag, Ind1: string(f.ind1), Ind2: string(f.ind2)}
			for _, s := range f.subfields {
				df.Subfields = append(df.Subfields, xmlSubfield{Code: string(s.code), Value: s.value})
			}
			record.DataFields = append(record.DataFields, df)
		}
		collection.Records = append(collection.Records, record)
	}
	out, err := xml.MarshalIndent(collection, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}
