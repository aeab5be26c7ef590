package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cosmoview-hq/cosmoview-gateway/internal/app"
	"github.com/cosmoview-hq/cosmoview-gateway/internal/domain"
	"github.com/cosmoview-hq/cosmoview-gateway/pkg/nasa"
)

func newRootCmd(explorer *app.Explorer) *cobra.Command {
	root := &cobra.Command{
		Use:           "explorer",
		Short:         "Query NASA open APIs and print normalized results",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAPODCmd(explorer),
		newNeoCmd(explorer),
		newNeoDetailCmd(explorer),
		newRoverCmd(explorer),
		newEarthCmd(explorer),
		newEpicCmd(explorer),
		newMediaCmd(explorer),
		newTechCmd(explorer),
	)
	return root
}

func newAPODCmd(explorer *app.Explorer) *cobra.Command {
	var q nasa.APODQuery

	cmd := &cobra.Command{
		Use:   "apod",
		Short: "Astronomy picture of the day, for one date or a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := explorer.DailyImages(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printResult(entries, len(entries))
		},
	}
	cmd.Flags().StringVar(&q.Date, "date", "", "single date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.StartDate, "start", "", "range start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.EndDate, "end", "", "range end date (YYYY-MM-DD)")
	return cmd
}

func newNeoCmd(explorer *app.Explorer) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "neo",
		Short: "Near-earth objects approaching within a date window (max 7 days)",
		RunE: func(cmd *cobra.Command, args []string) error {
			feed, err := explorer.NeoFeed(cmd.Context(), start, end)
			if err != nil {
				return err
			}
			return printResult(feed, len(feed.Dates))
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "window start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "window end date (YYYY-MM-DD)")
	return cmd
}

func newNeoDetailCmd(explorer *app.Explorer) *cobra.Command {
	return &cobra.Command{
		Use:   "neo-detail <id>",
		Short: "Full record for one near-earth object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, err := explorer.NeoDetail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResult(obj, 1)
		},
	}
}

func newRoverCmd(explorer *app.Explorer) *cobra.Command {
	var (
		rover  string
		sol    int
		camera string
	)

	cmd := &cobra.Command{
		Use:   "rover",
		Short: "Mars rover photos for a sol, optionally filtered by camera",
		RunE: func(cmd *cobra.Command, args []string) error {
			photos, err := explorer.RoverPhotos(cmd.Context(), rover, sol, camera)
			if err != nil {
				return err
			}
			return printResult(photos, len(photos))
		},
	}
	cmd.Flags().StringVar(&rover, "rover", "Curiosity", "rover name")
	cmd.Flags().IntVar(&sol, "sol", 0, "Martian sol")
	cmd.Flags().StringVar(&camera, "camera", "", "camera abbreviation (optional)")
	_ = cmd.MarkFlagRequired("sol")
	return cmd
}

func newEarthCmd(explorer *app.Explorer) *cobra.Command {
	var (
		lat, lon float64
		date     string
		out      string
	)

	cmd := &cobra.Command{
		Use:   "earth",
		Short: "Landsat tile and asset metadata for a location and date",
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := explorer.EarthImagery(cmd.Context(), lat, lon, date)
			if err != nil && nasa.KindOf(err) != nasa.KindPartialFailure {
				return err
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
			if len(img.Image) > 0 && out != "" {
				if werr := os.WriteFile(out, img.Image, 0o644); werr != nil {
					return fmt.Errorf("write image: %w", werr)
				}
				fmt.Printf("image written to %s (%d bytes)\n", out, len(img.Image))
			}
			meta := map[string]string{"asset_id": img.AssetID, "asset_date": img.AssetDate}
			return printResult(meta, 1)
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 1.5, "latitude")
	cmd.Flags().Float64Var(&lon, "lon", 100.75, "longitude")
	cmd.Flags().StringVar(&date, "date", "2024-01-29", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&out, "out", "earth.png", "file to write the image to")
	return cmd
}

func newEpicCmd(explorer *app.Explorer) *cobra.Command {
	var (
		kind string
		date string
	)

	cmd := &cobra.Command{
		Use:   "epic",
		Short: "EPIC frames for a date, with derived archive URLs",
		RunE: func(cmd *cobra.Command, args []string) error {
			epic := explorer.Epic()
			if err := epic.SetKind(cmd.Context(), nasa.EpicKind(kind)); err != nil {
				return err
			}
			frames, err := epic.FetchFrames(cmd.Context(), date)
			if err != nil {
				return err
			}

			type frameWithURL struct {
				domain.EpicFrame
				URL string
			}
			out := make([]frameWithURL, 0, len(frames))
			for _, f := range frames {
				u, err := epic.FrameURL(f)
				if err != nil {
					return err
				}
				out = append(out, frameWithURL{EpicFrame: f, URL: u})
			}
			return printResult(out, len(out))
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(nasa.EpicNatural), "image collection: natural or enhanced")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD); defaults to the newest available")
	return cmd
}

func newMediaCmd(explorer *app.Explorer) *cobra.Command {
	var (
		mediaType string
		resolve   bool
	)

	cmd := &cobra.Command{
		Use:   "media <term>",
		Short: "Search the image and video library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := explorer.MediaSearch(cmd.Context(), args[0], domain.MediaKind(mediaType))
			if err != nil {
				return err
			}
			if resolve {
				for i, item := range items {
					resolved, err := explorer.ResolveMedia(cmd.Context(), item)
					if err != nil {
						if nasa.KindOf(err) == nasa.KindResolutionUnavailable {
							continue
						}
						return err
					}
					items[i] = resolved
				}
			}
			return printResult(items, len(items))
		},
	}
	cmd.Flags().StringVar(&mediaType, "type", string(domain.MediaImage), "media type: image, video, or audio")
	cmd.Flags().BoolVar(&resolve, "resolve", false, "also resolve playable URLs for each hit")
	return cmd
}

func newTechCmd(explorer *app.Explorer) *cobra.Command {
	var collection string

	cmd := &cobra.Command{
		Use:   "tech <term>",
		Short: "Search the technology-transfer index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := explorer.TechTransfer(cmd.Context(), nasa.TechCollection(collection), args[0])
			if err != nil {
				return err
			}
			return printResult(results, len(results))
		},
	}
	cmd.Flags().StringVar(&collection, "collection", string(nasa.TechPatent), "patent, patent_issued, software, or spinoff")
	return cmd
}

// printResult emits the normalized entities as JSON, or a distinct
// "no results" line so empty outcomes never read as failures.
func printResult(v any, count int) error {
	if count == 0 {
		fmt.Println("no results for these parameters")
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
