package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/adscout/internal/metrics"
	"github.com/sells-group/adscout/internal/model"
)

var mediaFlags struct {
	mediaType string
	aspect    string
	style     string
	out       string
}

var mediaCmd = &cobra.Command{
	Use:   "media <prompt>",
	Short: "Generate an ad image or video with Freepik",
	Example: `  adscout media "iPhone 15 Pro with titanium design"
  adscout media "Eco-friendly water bottle" --type video
  adscout media "Luxury sports car" --aspect square`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initApp(ctx, "media")
		if err != nil {
			return err
		}
		defer env.Close()

		req := model.MediaRequest{
			ProductDescription: args[0],
			MediaType:          model.MediaType(mediaFlags.mediaType),
			Style:              mediaFlags.style,
			Aspect:             mediaFlags.aspect,
		}
		res, err := env.Media.Generate(ctx, req)
		metrics.ObserveMedia(mediaFlags.mediaType, err == nil)
		if err != nil {
			return eris.Wrap(err, "media")
		}

		fmt.Fprintf(os.Stderr, "%s: %s\n", res.Message, res.MediaURL)
		if mediaFlags.out == "" {
			return nil
		}
		if err := writeGeneratedAd(mediaFlags.out, args[0], res); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved to %s\n", mediaFlags.out)
		return nil
	},
}

func init() {
	f := mediaCmd.Flags()
	f.StringVar(&mediaFlags.mediaType, "type", "image", "media type (image, video)")
	f.StringVar(&mediaFlags.aspect, "aspect", "widescreen", "aspect ratio for images (widescreen, square, story, traditional)")
	f.StringVar(&mediaFlags.style, "style", "", "visual style for the prompt (default modern)")
	f.StringVar(&mediaFlags.out, "out", "generated_ad.json", "file to record the result in; empty to skip")
	rootCmd.AddCommand(mediaCmd)
}

type generatedAd struct {
	Prompt string          `json:"prompt"`
	Type   model.MediaType `json:"type"`
	URL    string          `json:"url"`
}

// writeGeneratedAd records a generated asset as indented JSON at path.
func writeGeneratedAd(path, prompt string, res *model.MediaResult) error {
	data, err := json.MarshalIndent(generatedAd{Prompt: prompt, Type: res.Type, URL: res.MediaURL}, "", "  ")
	if err != nil {
		return eris.Wrap(err, "encode generated ad")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return eris.Wrapf(err, "write %s", path)
	}
	return nil
}
