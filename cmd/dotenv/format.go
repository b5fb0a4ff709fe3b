package main

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
	"mvdan.cc/sh/v3/syntax"

	"github.com/gandalfthegui/dotenv/internal/envfile"
)

var formats = []string{"dotenv", "shell", "json", "yaml", "toml"}

var shellName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// writeValues renders v to w in the named format.
func writeValues(w io.Writer, v *envfile.Values, format string) error {
	switch format {
	case "dotenv":
		_, err := io.WriteString(w, envfile.Marshal(v))
		return err
	case "shell":
		return writeShell(w, v)
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case "yaml":
		data, err := yaml.Marshal(yamlNode(v))
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "toml":
		data, err := toml.Marshal(v.Map())
		if err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(formats, ", "))
	}
}

// writeShell emits export statements that a POSIX shell can source. Keys
// that are not valid shell names are listed as comments instead.
func writeShell(w io.Writer, v *envfile.Values) error {
	var err error
	v.Each(func(key, value string) {
		if err != nil {
			return
		}
		if !shellName.MatchString(key) {
			_, err = fmt.Fprintf(w, "# skipped %s: not a valid shell variable name\n", key)
			return
		}
		var quoted string
		quoted, err = syntax.Quote(value, syntax.LangBash)
		if err != nil {
			err = fmt.Errorf("quote %s: %w", key, err)
			return
		}
		_, err = fmt.Fprintf(w, "export %s=%s\n", key, quoted)
	})
	return err
}

// yamlNode builds a mapping node so the YAML output keeps file order.
func yamlNode(v *envfile.Values) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	v.Each(func(key, value string) {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
		)
	})
	return node
}
