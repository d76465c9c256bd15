// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"maps"
	"slices"
)

type Id int

const (
	DefinitionFileNotFoundId Id = iota + 1
	PermissionDeniedId
	RegistryParseErrorId
	UnsupportedRegistryFormatId
	ConfigLoadFailedId
	WatchFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
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

func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range append(i.DocLinks(), i.extLinks...) {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	definitionFileNotFoundIssue = &Issue{
		id: DefinitionFileNotFoundId,
		mdMsg: `
# Definition file not found!

makehelp reads the ` + "`Makefile`" + ` in the current directory unless told otherwise.

## Things you can try:
- Run makehelp from the directory that holds your Makefile
- Point at the file explicitly:
~~~
$ makehelp --file build/Makefile
~~~
- Set ` + "`listing.files`" + ` in your config file to the files you want listed`,
		docLinks: []HttpLink{"https://www.gnu.org/software/make/manual/html_node/Makefile-Names.html"},
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

A definition file exists but makehelp is not allowed to read it.

## Things you can try:
- Check the file mode:
~~~
$ ls -l Makefile
~~~
- Grant read access to your user:
~~~
$ chmod u+r Makefile
~~~`,
	}

	registryParseErrorIssue = &Issue{
		id: RegistryParseErrorId,
		mdMsg: `
# Failed to parse the registry file!

The registry file could not be decoded, or one of its commands is invalid.

## Common causes:
- Syntax errors in the document
- A command name with characters other than letters, digits, ` + "`_`" + ` and ` + "`-`" + `
- A description that spans more than one line
- The same command listed twice
- Unknown fields (only ` + "`commands`" + `, ` + "`name`" + ` and ` + "`description`" + ` are allowed)

## Example registry (CUE):
~~~cue
commands: [
	{name: "build", description: "main build fn"},
	{name: "test", description: "run tests"},
]
~~~

## Things you can try:
- Regenerate the registry from your Makefile:
~~~
$ makehelp export --output commands.cue
~~~`,
	}

	unsupportedRegistryFormatIssue = &Issue{
		id: UnsupportedRegistryFormatId,
		mdMsg: `
# Unsupported registry format!

makehelp picks the decoder from the registry file extension.

## Supported extensions:
- ` + "`.cue`" + `
- ` + "`.toml`" + `
- ` + "`.yaml`" + ` / ` + "`.yml`" + `
- ` + "`.json`",
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your makehelp configuration file could not be loaded.

## Things you can try:
- Show where makehelp looks for it:
~~~
$ makehelp config path
~~~
- Compare against the defaults:
~~~
$ makehelp config show
~~~
- Check ` + "`MAKEHELP_*`" + ` environment variables for invalid values`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	watchFailedIssue = &Issue{
		id: WatchFailedId,
		mdMsg: `
# File watching stopped!

The operating system refused to watch more files.

## Things you can try:
- Raise the inotify limits on Linux:
~~~
$ sudo sysctl fs.inotify.max_user_watches=524288
$ sudo sysctl fs.inotify.max_user_instances=512
~~~
- Raise the open file limit:
~~~
$ ulimit -n 4096
~~~`,
	}

	issues = map[Id]*Issue{
		definitionFileNotFoundIssue.Id():    definitionFileNotFoundIssue,
		permissionDeniedIssue.Id():          permissionDeniedIssue,
		registryParseErrorIssue.Id():        registryParseErrorIssue,
		unsupportedRegistryFormatIssue.Id(): unsupportedRegistryFormatIssue,
		configLoadFailedIssue.Id():          configLoadFailedIssue,
		watchFailedIssue.Id():               watchFailedIssue,
	}
)

func Values() []*Issue {
	return slices.Collect(maps.Values(issues))
}

func Get(id Id) *Issue {
	return issues[id]
}
