package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var errNoInput = errors.New("no input text")

// readText decodes r as UTF-8, or as UTF-16 when it starts with a UTF-16
// byte order mark. A single trailing line break is dropped.
func readText(r io.Reader) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	b, err := io.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return "", err
	}
	s := string(b)
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, nil
}

// inputs returns the texts a command works on: the --file contents when
// set, then the positional arguments. An argument of "-" reads stdin.
func (c *cli) inputs(args []string) ([]string, error) {
	var out []string
	if c.file != "" {
		s, err := c.readSource(c.file)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	for _, a := range args {
		if a != "-" {
			out = append(out, a)
			continue
		}
		s, err := c.readSource(a)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, errNoInput
	}
	return out, nil
}

func (c *cli) readSource(name string) (string, error) {
	if name == "-" {
		return readText(c.in)
	}
	f, err := os.Open(name)
	if err != nil {
		return "", fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	s, err := readText(f)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return s, nil
}
