package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/adscout/internal/model"
)

var scrapeFlags struct {
	product     string
	description string
	audience    string
	price       string
	competitors []string
	messages    []string
	adType      string
	category    string
	newProduct  bool
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Research a single brief and print the report",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		brief, err := briefFromFlags()
		if err != nil {
			return err
		}

		env, err := initApp(ctx, "scrape")
		if err != nil {
			return err
		}
		defer env.Close()

		data, runID, err := research(ctx, env, brief)
		if err != nil {
			return eris.Wrap(err, "scrape")
		}
		if runID != "" {
			zap.L().Info("run recorded", zap.String("run_id", runID))
		}

		return writeReport(os.Stdout, data)
	},
}

func init() {
	f := scrapeCmd.Flags()
	f.StringVar(&scrapeFlags.product, "product", "", "product, event or role name (required)")
	f.StringVar(&scrapeFlags.description, "description", "", "short description (required)")
	f.StringVar(&scrapeFlags.audience, "audience", "", "target audience")
	f.StringVar(&scrapeFlags.price, "price", "", "price as free text")
	f.StringSliceVar(&scrapeFlags.competitors, "competitor", nil, "known competitor (repeatable)")
	f.StringSliceVar(&scrapeFlags.messages, "key-message", nil, "key message (repeatable)")
	f.StringVar(&scrapeFlags.adType, "type", "", "override the inferred ad type (product, event, job, generic)")
	f.StringVar(&scrapeFlags.category, "category", "", "override the inferred category")
	f.BoolVar(&scrapeFlags.newProduct, "new-product", false, "mark the product as newly launched")
	rootCmd.AddCommand(scrapeCmd)
}

// briefFromFlags assembles a brief from the scrape flags and validates it
// with the same schema the API uses.
func briefFromFlags() (model.Brief, error) {
	brief := model.Brief{
		Product:          scrapeFlags.product,
		ShortDescription: scrapeFlags.description,
		TargetAudience:   scrapeFlags.audience,
		Price:            scrapeFlags.price,
		Competitors:      scrapeFlags.competitors,
		KeyMessages:      scrapeFlags.messages,
		AdType:           model.SubjectType(scrapeFlags.adType),
		Category:         scrapeFlags.category,
		IsNewProduct:     scrapeFlags.newProduct,
	}

	body, err := json.Marshal(brief)
	if err != nil {
		return brief, eris.Wrap(err, "encode brief")
	}
	if err := validateJSON(briefSchema, body); err != nil {
		return brief, err
	}
	return brief, nil
}

func writeReport(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
