// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/gengen/gengen/pkg/target"
)

// ImageFormat identifies the module image encoding.
const ImageFormat = "gengen-module-image/1"

const (
	// ImageBitcode is a target-independent module image.
	ImageBitcode ImageKind = "bitcode"
	// ImageObject is a module image bound to a native target.
	ImageObject ImageKind = "object"
)

// ErrBadImage is returned when decoding data that is not a module image.
var ErrBadImage = errors.New("not a gengen module image")

type (
	// ImageKind tells what a module image stands in for.
	ImageKind string

	// Image is the serialized form of a Module used for bitcode and object
	// artifacts and for static library members.
	Image struct {
		Format    string          `toml:"format"`
		Kind      ImageKind       `toml:"kind"`
		Name      string          `toml:"name"`
		Target    string          `toml:"target"`
		Linkage   string          `toml:"linkage"`
		Runtime   bool            `toml:"runtime,omitempty"`
		Arguments []ImageArgument `toml:"arguments,omitempty"`
		Functions []ImageFunc     `toml:"functions,omitempty"`
		Dispatch  []DispatchEntry `toml:"dispatch,omitempty"`
	}

	// ImageArgument is an Argument in an Image.
	ImageArgument struct {
		Name       string `toml:"name"`
		Kind       string `toml:"kind"`
		Type       string `toml:"type"`
		Dimensions int    `toml:"dimensions"`
		Default    string `toml:"default,omitempty"`
		Min        string `toml:"min,omitempty"`
		Max        string `toml:"max,omitempty"`
	}

	// ImageFunc is a LoweredFunc in an Image.
	ImageFunc struct {
		Name   string   `toml:"name"`
		Args   []string `toml:"args,omitempty"`
		Values []string `toml:"values"`
		Types  []string `toml:"types"`
	}

	// DispatchEntry is one candidate of a multi-target wrapper: the symbol
	// to call when the running host supports Target.
	DispatchEntry struct {
		Target string `toml:"target"`
		Symbol string `toml:"symbol"`
	}
)

// NewImage returns the image of m.
func NewImage(m *Module, kind ImageKind) Image {
	img := Image{
		Format:  ImageFormat,
		Kind:    kind,
		Name:    m.Name,
		Target:  m.Target.String(),
		Linkage: m.Linkage.String(),
		Runtime: m.Runtime,
	}
	img.Arguments = imageArguments(m.Arguments)
	for _, f := range m.Functions {
		types := make([]string, len(f.Types))
		for i, t := range f.Types {
			types[i] = t.String()
		}
		img.Functions = append(img.Functions, ImageFunc{Name: f.Name, Args: f.Args, Values: f.Values, Types: types})
	}
	return img
}

// NewDispatchImage returns the image of a wrapper named name that forwards
// to the first entry whose target the host supports. The last entry is the
// unconditional fallback.
func NewDispatchImage(name string, t target.Target, args []Argument, entries []DispatchEntry) Image {
	return Image{
		Format:    ImageFormat,
		Kind:      ImageObject,
		Name:      name,
		Target:    t.String(),
		Linkage:   LinkageExternal.String(),
		Arguments: imageArguments(args),
		Dispatch:  entries,
	}
}

func imageArguments(args []Argument) []ImageArgument {
	out := make([]ImageArgument, 0, len(args))
	for _, a := range args {
		out = append(out, ImageArgument{
			Name:       a.Name,
			Kind:       a.Kind.String(),
			Type:       a.Type.String(),
			Dimensions: a.Dimensions,
			Default:    a.Default.String(),
			Min:        a.Min.String(),
			Max:        a.Max.String(),
		})
	}
	return out
}

// Encode serializes img as TOML.
func (img Image) Encode() ([]byte, error) {
	data, err := toml.Marshal(img)
	if err != nil {
		return nil, fmt.Errorf("encode module image %s: %w", img.Name, err)
	}
	return data, nil
}

// DecodeImage parses a module image.
func DecodeImage(data []byte) (Image, error) {
	var img Image
	if err := toml.Unmarshal(data, &img); err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrBadImage, err)
	}
	if img.Format != ImageFormat {
		return Image{}, fmt.Errorf("%w: format %q", ErrBadImage, img.Format)
	}
	return img, nil
}

func imageWriter(kind ImageKind) writeFunc {
	return func(w *bufio.Writer, m *Module) error {
		data, err := NewImage(m, kind).Encode()
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
}
