package main

import (
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/clipboard"
)

// A Clipboard copies through the system clipboard when one is available, and
// otherwise keeps the contents in memory for this process.
type Clipboard struct {
	external bool
	internal string
}

// NewClipboard tries to initialize the system clipboard. Failing to do so is
// not fatal; the internal clipboard is used instead.
func NewClipboard(logger logrus.FieldLogger) *Clipboard {
	if err := clipboard.Initialize(); err != nil {
		logger.WithError(err).Info("System clipboard unavailable, using internal clipboard")
		return &Clipboard{}
	}
	return &Clipboard{external: true}
}

func (c *Clipboard) Read() (string, error) {
	if c.external {
		return clipboard.ReadAll("clipboard")
	}
	return c.internal, nil
}

func (c *Clipboard) Write(content string) error {
	if c.external {
		return clipboard.WriteAll(content, "clipboard")
	}
	c.internal = content
	return nil
}
