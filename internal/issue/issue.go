// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	UsageErrorId Id = iota + 1
	UnknownGeneratorId
	InvalidGeneratorParamId
	InvalidTargetId
	ConfigLoadFailedId
	CompileFailedId
	OutputWriteFailedId
	InternalErrorId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue's markdown with glamour using the given style
// ("dark", "light", "notty" or a path to a JSON style).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- [" + string(link) + "](" + string(link) + ")\n")
		}
		for _, link := range i.extLinks {
			md.WriteString("- [" + string(link) + "](" + string(link) + ")\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	usageErrorIssue = &Issue{
		id: UsageErrorId,
		mdMsg: `
# Invalid command line!

The build driver could not make sense of its arguments.

## Required flags:
- ` + "`-g NAME`" + `: the generator to run (unless exactly one is linked in)
- ` + "`-o DIR`" + `: the directory the artifacts are written to

## Things you can try:
- Pass generator params as ` + "`name=value`" + ` pairs after the flags:
~~~
$ gengen -g blur -o out target=x86-64-linux radius=3
~~~

- Build only the runtime support code:
~~~
$ gengen -r gengen_runtime -o out target=host
~~~`,
	}

	unknownGeneratorIssue = &Issue{
		id: UnknownGeneratorId,
		mdMsg: `
# Generator not found!

No generator with the requested name is registered in this binary.

## Things you can try:
- Run the driver without ` + "`-g`" + ` to list the available generators
- Check that the package defining the generator is linked into the binary
- Check for typos in the generator name`,
	}

	invalidGeneratorParamIssue = &Issue{
		id: InvalidGeneratorParamId,
		mdMsg: `
# Invalid generator param!

One of the ` + "`name=value`" + ` pairs could not be applied to the generator.
Either the generator has no such param, or the value does not parse
as the param's type.

## Things you can try:
- Check the param name against the generator's declared params
- Enum params only accept their listed names
- Bounded params reject values outside their range`,
	}

	invalidTargetIssue = &Issue{
		id: InvalidTargetId,
		mdMsg: `
# Invalid target!

The ` + "`target`" + ` param must be a dash-separated target string,
or a comma-separated list of them for multitarget builds.

## Examples:
~~~
target=host
target=x86-64-linux-sse41
target=x86-64-linux-avx-sse41,x86-64-linux-sse41,x86-64-linux
~~~

## Rules for multitarget builds:
- Every target must share the same OS, architecture and bit width
- Only the ` + "`h`" + ` and ` + "`static_library`" + ` outputs are supported`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the gengen configuration file.

## Configuration file locations:
- Linux: ~/.config/gengen/config.cue
- macOS: ~/Library/Application Support/gengen/config.cue
- Windows: %APPDATA%\gengen\config.cue

## Things you can try:
- Check the configuration syntax
- Remove the config file to use defaults

## Example configuration:
~~~cue
build: {
  emit: ["static_library", "h"]
  max_parallel: 4
}
ui: {
  color_scheme: "auto"
  verbose: false
}
~~~`,
	}

	compileFailedIssue = &Issue{
		id: CompileFailedId,
		mdMsg: `
# Generator failed to build!

The generator's pipeline could not be compiled into a module.

## Common causes:
- An output Func was declared but never defined
- Two arguments share the same name
- The function name is not a valid C identifier

## Things you can try:
- Run with ` + "`--verbose`" + ` for the full error chain
- Override the function name with ` + "`-f`" + ``,
	}

	outputWriteFailedIssue = &Issue{
		id: OutputWriteFailedId,
		mdMsg: `
# Failed to write artifacts!

The build succeeded but an output file could not be written.

## Things you can try:
- Check that the output directory is writable
- Check that there is enough disk space`,
	}

	internalErrorIssue = &Issue{
		id: InternalErrorId,
		mdMsg: `
# Internal error!

A generator broke one of its own invariants. This is a bug in the
generator or in gengen itself, not a problem with the command line.

## Things you can try:
- Re-run with ` + "`--verbose`" + ` and report the output`,
	}

	issues = map[Id]*Issue{
		usageErrorIssue.Id():            usageErrorIssue,
		unknownGeneratorIssue.Id():      unknownGeneratorIssue,
		invalidGeneratorParamIssue.Id(): invalidGeneratorParamIssue,
		invalidTargetIssue.Id():         invalidTargetIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		compileFailedIssue.Id():         compileFailedIssue,
		outputWriteFailedIssue.Id():     outputWriteFailedIssue,
		internalErrorIssue.Id():         internalErrorIssue,
	}
)

// Values returns every registered issue ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
