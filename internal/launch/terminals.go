package launch

import "strings"

// Terminal is a known emulator and the invocation that runs a shell command in it.
// Invocation uses {cmd} for the quoted inner command and {title} for the quoted title.
type Terminal struct {
	Name       string
	Binary     string
	Invocation string
}

// Format fills the invocation with the shell-quoted inner command and title.
func (t Terminal) Format(inner, title string) string {
	return strings.NewReplacer(
		"{cmd}", Quote(inner),
		"{title}", Quote(title),
	).Replace(t.Invocation)
}

// KnownTerminals returns the probe order used when no template is configured.
func KnownTerminals() []Terminal {
	return []Terminal{
		{Name: "kitty", Binary: "kitty", Invocation: "kitty --title {title} sh -c {cmd}"},
		{Name: "wezterm", Binary: "wezterm", Invocation: "wezterm start --always-new-process -- sh -c {cmd}"},
		{Name: "alacritty", Binary: "alacritty", Invocation: "alacritty --title {title} -e sh -c {cmd}"},
		{Name: "ghostty", Binary: "ghostty", Invocation: "ghostty --title={title} -e sh -c {cmd}"},
		{Name: "foot", Binary: "foot", Invocation: "foot --title {title} sh -c {cmd}"},
		{Name: "gnome-terminal", Binary: "gnome-terminal", Invocation: "gnome-terminal --wait --title {title} -- sh -c {cmd}"},
		{Name: "konsole", Binary: "konsole", Invocation: "konsole --separate -p tabtitle={title} -e sh -c {cmd}"},
		{Name: "xfce4-terminal", Binary: "xfce4-terminal", Invocation: "xfce4-terminal --disable-server --title {title} -x sh -c {cmd}"},
		{Name: "xterm", Binary: "xterm", Invocation: "xterm -T {title} -e sh -c {cmd}"},
	}
}

// Prioritize restricts terms to the named ones, in the given order. Unknown
// names are skipped; an empty priority keeps terms as they are.
func Prioritize(terms []Terminal, priority []string) []Terminal {
	if len(priority) == 0 {
		return terms
	}
	byName := make(map[string]Terminal, len(terms))
	for _, t := range terms {
		byName[t.Name] = t
	}
	out := make([]Terminal, 0, len(priority))
	seen := make(map[string]struct{}, len(priority))
	for _, name := range priority {
		name = strings.ToLower(strings.TrimSpace(name))
		t, ok := byName[name]
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, t)
	}
	return out
}
