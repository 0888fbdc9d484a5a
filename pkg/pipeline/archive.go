// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	arMagic      = "!<arch>\n"
	arHeaderSize = 60
	// arMaxShortName is the longest member name stored inline; longer names
	// go to the GNU "//" name table.
	arMaxShortName = 15
)

// ErrBadArchive is returned when reading data that is not an ar archive.
var ErrBadArchive = errors.New("malformed ar archive")

// ArchiveMember is one file inside a static library.
type ArchiveMember struct {
	Name string
	Data []byte
}

// WriteArchive writes members as a deterministic GNU ar archive: timestamps,
// owners and modes are fixed so equal inputs produce equal bytes.
func WriteArchive(w io.Writer, members []ArchiveMember) error {
	var names bytes.Buffer
	offsets := make([]int, len(members))
	for i, m := range members {
		if m.Name == "" || strings.ContainsAny(m.Name, "/\n") {
			return fmt.Errorf("%w: invalid member name %q", ErrBadArchive, m.Name)
		}
		offsets[i] = -1
		if len(m.Name) > arMaxShortName {
			offsets[i] = names.Len()
			names.WriteString(m.Name + "/\n")
		}
	}

	if _, err := io.WriteString(w, arMagic); err != nil {
		return err
	}
	if names.Len() > 0 {
		if err := writeArMember(w, "//", names.Bytes()); err != nil {
			return err
		}
	}
	for i, m := range members {
		name := m.Name + "/"
		if offsets[i] >= 0 {
			name = "/" + strconv.Itoa(offsets[i])
		}
		if err := writeArMember(w, name, m.Data); err != nil {
			return err
		}
	}
	return nil
}

func writeArMember(w io.Writer, name string, data []byte) error {
	mode := "644"
	if name == "//" {
		mode = ""
	}
	header := fmt.Sprintf("%-16s%-12s%-6s%-6s%-8s%-10d`\n", name, "0", "0", "0", mode, len(data))
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if len(data)%2 == 1 {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// ReadArchive parses an archive written by WriteArchive or a compatible GNU ar.
func ReadArchive(r io.Reader) ([]ArchiveMember, error) {
	br := bufio.NewReader(r)
	magic := make([]byte, len(arMagic))
	if _, err := io.ReadFull(br, magic); err != nil || string(magic) != arMagic {
		return nil, fmt.Errorf("%w: missing magic", ErrBadArchive)
	}

	var (
		members   []ArchiveMember
		nameTable []byte
		header    = make([]byte, arHeaderSize)
	)
	for {
		if _, err := io.ReadFull(br, header); err != nil {
			if errors.Is(err, io.EOF) {
				return members, nil
			}
			return nil, fmt.Errorf("%w: truncated header", ErrBadArchive)
		}
		if string(header[58:60]) != "`\n" {
			return nil, fmt.Errorf("%w: bad header terminator", ErrBadArchive)
		}
		size, err := strconv.Atoi(strings.TrimSpace(string(header[48:58])))
		if err != nil || size < 0 {
			return nil, fmt.Errorf("%w: bad member size", ErrBadArchive)
		}
		data := make([]byte, size)
		if _, err := io.ReadFull(br, data); err != nil {
			return nil, fmt.Errorf("%w: truncated member", ErrBadArchive)
		}
		if size%2 == 1 {
			if _, err := br.ReadByte(); err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
		}

		rawName := strings.TrimRight(string(header[:16]), " ")
		switch {
		case rawName == "//":
			nameTable = data
			continue
		case rawName == "/":
			// symbol table
			continue
		case strings.HasPrefix(rawName, "/"):
			off, err := strconv.Atoi(rawName[1:])
			if err != nil || off < 0 || off >= len(nameTable) {
				return nil, fmt.Errorf("%w: bad long name reference %q", ErrBadArchive, rawName)
			}
			end := bytes.Index(nameTable[off:], []byte("/\n"))
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated long name", ErrBadArchive)
			}
			rawName = string(nameTable[off : off+end])
		default:
			rawName = strings.TrimSuffix(rawName, "/")
		}
		members = append(members, ArchiveMember{Name: rawName, Data: data})
	}
}

func writeStaticLibrary(w *bufio.Writer, m *Module) error {
	data, err := NewImage(m, m.objectKind()).Encode()
	if err != nil {
		return err
	}
	return WriteArchive(w, []ArchiveMember{{Name: m.ObjectMemberName(), Data: data}})
}
