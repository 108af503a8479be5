package prompt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
)

func TestSurveyDriverCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	d := NewSurveyDriver(&out)
	calls := map[string]func() error{
		"input": func() error {
			_, err := d.Input(ctx, InputConfig{Message: "Heading"})
			return err
		},
		"confirm": func() error {
			_, err := d.Confirm(ctx, ConfirmConfig{Message: "Show button"})
			return err
		},
		"select": func() error {
			_, err := d.Select(ctx, SelectConfig{Message: "Layout", Options: []string{"full", "wide"}})
			return err
		},
		"textarea": func() error {
			_, err := d.TextArea(ctx, TextAreaConfig{Message: "Body"})
			return err
		},
		"info": func() error { return d.Info(ctx, "Block item") },
	}
	for name, call := range calls {
		if err := call(); !errors.Is(err, context.Canceled) {
			t.Errorf("%s: expected context.Canceled, got %v", name, err)
		}
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestSurveyDriverInfo(t *testing.T) {
	var out bytes.Buffer
	if err := NewSurveyDriver(&out).Info(context.Background(), "Block item (Item)"); err != nil {
		t.Fatalf("Info: %v", err)
	}
	if out.String() != "Block item (Item)\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	if err := translateSurveyErr(fmt.Errorf("ask: %w", terminal.InterruptErr)); !errors.Is(err, ErrAborted) {
		t.Fatalf("interrupt = %v", err)
	}
	other := errors.New("tty closed")
	if err := translateSurveyErr(other); err != other {
		t.Fatalf("other = %v", err)
	}
}
