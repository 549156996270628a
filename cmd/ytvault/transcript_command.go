package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ytvault/internal/config"
	"ytvault/internal/fileutil"
	"ytvault/internal/transcript"
)

func newTranscriptCommand() *cobra.Command {
	var notePath string
	var appendToNote bool
	var outputPath string

	cmd := &cobra.Command{
		Use:   "transcript [file]",
		Short: "Turn transcript timestamps into links that seek the video",
		Long: `Rewrite every (h:mm:ss) and (mm:ss) timestamp in a transcript into a Markdown link
that opens the video at that offset. The video is identified by the single
YouTube watch URL in the transcript itself, or in the note given with --note.

The transcript is read from the file argument, or from stdin when the argument
is omitted or "-".

Examples:
  ytvault transcript talk.md
  pbpaste | ytvault transcript --note "Vault/YouTube/Talks/01 - Intro.md" --append`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if appendToNote && strings.TrimSpace(notePath) == "" {
				return errors.New("--append requires --note")
			}
			if appendToNote && strings.TrimSpace(outputPath) != "" {
				return errors.New("--append and --output cannot be combined")
			}

			source := ""
			if len(args) > 0 {
				source = args[0]
			}
			text, err := readInput(cmd, source)
			if err != nil {
				return err
			}

			var result transcript.Result
			if notePath != "" {
				note, err := readNote(notePath)
				if err != nil {
					return err
				}
				result, err = transcript.RewriteWithSource(text, note)
				if err != nil {
					return transcriptError(err)
				}
			} else {
				result, err = transcript.Rewrite(text)
				if err != nil {
					return transcriptError(err)
				}
			}

			switch {
			case appendToNote:
				if err := appendNote(notePath, result.Text); err != nil {
					return err
				}
			case strings.TrimSpace(outputPath) != "":
				target, err := config.ExpandPath(outputPath)
				if err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
				if err := os.WriteFile(target, []byte(result.Text), 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			default:
				fmt.Fprint(cmd.OutOrStdout(), result.Text)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Linked %d timestamp(s) to video %s\n", result.Markers, result.VideoID)
			return nil
		},
	}

	cmd.Flags().StringVar(&notePath, "note", "", "Note containing the video URL")
	cmd.Flags().BoolVar(&appendToNote, "append", false, "Append the rewritten transcript to the --note file")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the rewritten transcript to this file")
	return cmd
}

func readInput(cmd *cobra.Command, source string) (string, error) {
	if source == "" || source == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	path, err := config.ExpandPath(source)
	if err != nil {
		return "", fmt.Errorf("resolve transcript path: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return string(data), nil
}

func readNote(notePath string) (string, error) {
	path, err := config.ExpandPath(notePath)
	if err != nil {
		return "", fmt.Errorf("resolve note path: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read note: %w", err)
	}
	return string(data), nil
}

func appendNote(notePath, text string) error {
	path, err := config.ExpandPath(notePath)
	if err != nil {
		return fmt.Errorf("resolve note path: %w", err)
	}
	existing, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read note: %w", err)
	}
	var b strings.Builder
	if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		b.WriteString("\n")
	}
	if err := fileutil.AppendFile(path, []byte(b.String())); err != nil {
		return fmt.Errorf("append to note: %w", err)
	}
	return nil
}

func transcriptError(err error) error {
	switch {
	case errors.Is(err, transcript.ErrNoTimestamps):
		return fmt.Errorf("transcript unchanged: %w", err)
	case errors.Is(err, transcript.ErrNoURLFound):
		return fmt.Errorf("%w; add a watch URL to the text or pass --note", err)
	default:
		return err
	}
}
