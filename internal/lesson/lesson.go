// Package lesson holds the lesson catalog and turns it into the menu tree
// the session walks.
package lesson

import (
	_ "embed"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"debacademy/internal/model"
)

//go:embed lessons.yaml
var catalogYAML []byte

// catalogFile mirrors lessons.yaml.
type catalogFile struct {
	Title     string      `yaml:"title"`
	Prompt    string      `yaml:"prompt"`
	ExitLabel string      `yaml:"exit_label"`
	BackLabel string      `yaml:"back_label"`
	Topics    []topicFile `yaml:"topics"`
}

type topicFile struct {
	Label   string       `yaml:"label"`
	Title   string       `yaml:"title"`
	Intro   []stepFile   `yaml:"intro"`
	Heading string       `yaml:"heading"`
	Lessons []lessonFile `yaml:"lessons"`
	Outro   []stepFile   `yaml:"outro"`
}

type lessonFile struct {
	Label string     `yaml:"label"`
	Steps []stepFile `yaml:"steps"`
}

type stepFile struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
	Output      string `yaml:"output"`
	Note        string `yaml:"note"`
	Style       string `yaml:"style"`
	When        string `yaml:"when"`
}

// Load parses the built-in catalog.
func Load() (*model.Menu, error) {
	return Parse(catalogYAML)
}

// Parse builds the root menu from a catalog document. The root lists every
// topic followed by Exit; each topic lists its lessons followed by Back.
func Parse(data []byte) (*model.Menu, error) {
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, errors.Wrap(err, "failed to parse lesson catalog")
	}
	if len(cf.Topics) == 0 {
		return nil, errors.New("lesson catalog has no topics")
	}

	root := &model.Menu{
		Title:  cf.Title,
		Prompt: cf.Prompt,
		Root:   true,
	}
	for i, tf := range cf.Topics {
		topic, err := buildTopic(tf, cf.BackLabel)
		if err != nil {
			return nil, errors.Wrapf(err, "topic %d (%q)", i+1, tf.Label)
		}
		root.Options = append(root.Options, model.Option{
			Label:  tf.Label,
			Action: model.Action{Kind: model.ActionSubmenu, Submenu: topic},
		})
	}
	root.Options = append(root.Options, model.Option{
		Label:  orDefault(cf.ExitLabel, "Exit"),
		Action: model.Action{Kind: model.ActionExit},
	})
	return root, nil
}

func buildTopic(tf topicFile, backLabel string) (*model.Menu, error) {
	if tf.Label == "" {
		return nil, errors.New("missing label")
	}
	if len(tf.Lessons) == 0 {
		return nil, errors.New("no lessons")
	}

	intro, err := buildSteps(tf.Intro)
	if err != nil {
		return nil, errors.Wrap(err, "intro")
	}
	outro, err := buildSteps(tf.Outro)
	if err != nil {
		return nil, errors.Wrap(err, "outro")
	}

	menu := &model.Menu{
		Title:   orDefault(tf.Title, tf.Label),
		Intro:   intro,
		Heading: tf.Heading,
		Outro:   outro,
	}
	for i, lf := range tf.Lessons {
		steps, err := buildSteps(lf.Steps)
		if err != nil {
			return nil, errors.Wrapf(err, "lesson %d (%q)", i+1, lf.Label)
		}
		if len(model.Demos(steps)) == 0 {
			return nil, errors.Errorf("lesson %d (%q) has no commands", i+1, lf.Label)
		}
		menu.Options = append(menu.Options, model.Option{
			Label:  lf.Label,
			Action: model.Action{Kind: model.ActionLesson, Steps: steps},
		})
	}
	menu.Options = append(menu.Options, model.Option{
		Label:  orDefault(backLabel, "Back"),
		Action: model.Action{Kind: model.ActionBack},
	})
	return menu, nil
}

func buildSteps(files []stepFile) ([]model.Step, error) {
	steps := make([]model.Step, 0, len(files))
	for i, sf := range files {
		when, err := parseCondition(sf.When)
		if err != nil {
			return nil, errors.Wrapf(err, "step %d", i+1)
		}
		style, err := parseStyle(sf.Style)
		if err != nil {
			return nil, errors.Wrapf(err, "step %d", i+1)
		}

		if sf.Command == "" {
			if sf.Description != "" || sf.Output != "" {
				return nil, errors.Errorf("step %d has a description or output but no command", i+1)
			}
			steps = append(steps, model.Step{Note: sf.Note, Style: style, When: when})
			continue
		}
		if sf.Note != "" {
			return nil, errors.Errorf("step %d mixes a command and a note", i+1)
		}
		steps = append(steps, model.Step{
			Demo: &model.DemoEntry{
				Command:         sf.Command,
				Description:     sf.Description,
				SimulatedOutput: sf.Output,
			},
			When: when,
		})
	}
	return steps, nil
}

func parseCondition(s string) (model.Condition, error) {
	switch c := model.Condition(s); c {
	case model.Always, model.WhenLive, model.WhenSimulate, model.WhenUbuntu:
		return c, nil
	default:
		return "", errors.Errorf("unknown condition %q", s)
	}
}

func parseStyle(s string) (model.NoteStyle, error) {
	if s == "" {
		return model.StylePlain, nil
	}
	switch st := model.NoteStyle(s); st {
	case model.StylePlain, model.StyleInfo, model.StyleTip, model.StyleWarn, model.StyleNotice, model.StyleAccent:
		return st, nil
	default:
		return "", errors.Errorf("unknown style %q", s)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
