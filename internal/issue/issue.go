// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	UnknownProfileId
	CommandNotFoundId
	RewriteFailedId
	ExecFailedId
	PlatformUnsupportedId
	ScriptFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // optional links into the project documentation
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
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the childenv configuration file.

## Configuration file locations:
- Linux: ~/.config/childenv/config.toml
- macOS: ~/Library/Application Support/childenv/config.toml
- Windows: %APPDATA%\childenv\config.toml

## Things you can try:
- Create a default configuration:
~~~
$ childenv config init
~~~

- Check the TOML syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/childenv/config.toml
~~~

## Example configuration:
~~~toml
default_profile = "hardened"
verbose = false

[profiles]
hardened = "LD_PRELOAD,LD_LIBRARY_PATH,PATH=/usr/bin:/bin"
tracing = "DEBUG=1,RUST_LOG=trace"
~~~`,
	}

	unknownProfileIssue = &Issue{
		id: UnknownProfileId,
		mdMsg: `
# Unknown profile!

The rule profile you specified does not exist in your configuration.

## Things you can try:
- List the profiles defined in your configuration:
~~~
$ childenv config show
~~~

- Check for typos in the profile name
- Add the profile to your configuration file:
~~~toml
[profiles]
hardened = "LD_PRELOAD,LD_LIBRARY_PATH"
~~~`,
	}

	commandNotFoundIssue = &Issue{
		id: CommandNotFoundId,
		mdMsg: `
# Command not found!

The command you asked childenv to run could not be located.

## Things you can try:
- Check for typos in the command name
- Verify the command is installed and reachable through PATH:
~~~
$ command -v <name>
~~~

- Provide an absolute path to the executable
- Remember that a PATH= rule changes where the child lookup searches`,
	}

	rewriteFailedIssue = &Issue{
		id: RewriteFailedId,
		mdMsg: `
# Environment rewrite failed!

The child environment could not be rebuilt from the active rules, so the
command was not launched. childenv never starts a child with an unfiltered
environment: when the rewrite fails, the launch is aborted.

## Things you can try:
- Inspect the active rules and where they come from:
~~~
$ childenv rules
~~~

- Preview the rewrite without launching anything:
~~~
$ childenv print --diff
~~~

- Run with verbose mode for more details:
~~~
$ childenv --verbose run -- <command>
~~~`,
	}

	execFailedIssue = &Issue{
		id: ExecFailedId,
		mdMsg: `
# Exec failed!

The process image could not be replaced with the requested command.

## Common causes:
- The file is missing the execute permission bit
- The file is not a valid executable for this platform
- Resource limits prevented the exec

## Things you can try:
- Check file permissions:
~~~
$ ls -l <path>
~~~

- Verify the binary matches your OS and architecture
- Run with verbose mode for more details:
~~~
$ childenv --verbose run -- <command>
~~~`,
	}

	platformUnsupportedIssue = &Issue{
		id: PlatformUnsupportedId,
		mdMsg: `
# Platform not supported!

This operation relies on POSIX exec semantics, which are not available on
your operating system.

## Things you can try:
- Inspect the rewritten environment instead:
~~~
$ childenv print --diff
~~~

- Run a script under the rewritten environment with the embedded shell:
~~~
$ childenv shell -c 'env | sort'
~~~

- Run this command on Linux or macOS`,
	}

	scriptFailedIssue = &Issue{
		id: ScriptFailedId,
		mdMsg: `
# Script execution failed!

The script passed to the embedded shell did not complete successfully.

## Common causes:
- A command used by the script is not in the rewritten PATH
- Syntax error in the script
- A command in the script exited non-zero

## Things you can try:
- Run with verbose mode for more details:
~~~
$ childenv --verbose shell -c '<script>'
~~~

- Remember the script sees the rewritten environment, not your shell's;
  preview it first:
~~~
$ childenv print
~~~`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		unknownProfileIssue.Id():      unknownProfileIssue,
		commandNotFoundIssue.Id():     commandNotFoundIssue,
		rewriteFailedIssue.Id():       rewriteFailedIssue,
		execFailedIssue.Id():          execFailedIssue,
		platformUnsupportedIssue.Id(): platformUnsupportedIssue,
		scriptFailedIssue.Id():        scriptFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
