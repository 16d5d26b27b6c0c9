package app

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the CLI around a. Without a subcommand it runs the demo.
func NewRootCommand(a *App) *cobra.Command {
	var target, cameraID string

	rootCmd := &cobra.Command{
		Use:   "featurestore",
		Short: "Store image features and descriptions in SQLite",
		Long: `featurestore keeps keypoints, descriptors and motion statistics per camera
and image descriptions in a production and a test SQLite file.

Examples:
  featurestore                                  # run the demo
  featurestore init --target test               # create tables in the test file
  featurestore get --camera camera_1            # show the first feature of a camera
  featurestore delete --camera camera_1         # delete all features of a camera
  featurestore clear-test                       # drop image_features in the test file`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.RunDemo(cmd.Context())
		},
	}

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Create tables, insert a sample description and feature, read the feature back",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.RunDemo(cmd.Context())
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the image_features and image_description tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.InitTables(cmd.Context(), target)
		},
	}

	getCmd := &cobra.Command{
		Use:     "get",
		Short:   "Show the first image feature stored for a camera",
		Example: `  featurestore get --camera camera_1 --target test`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ShowFeature(cmd.Context(), target, cameraID)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete every image feature stored for a camera",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.DeleteFeatures(cmd.Context(), target, cameraID)
		},
	}

	clearTestCmd := &cobra.Command{
		Use:   "clear-test",
		Short: "Drop the image_features table in the test database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ClearTest(cmd.Context())
		},
	}

	for _, cmd := range []*cobra.Command{initCmd, getCmd, deleteCmd} {
		cmd.Flags().StringVar(&target, "target", TargetProduction, "storage target: prod or test")
	}
	for _, cmd := range []*cobra.Command{getCmd, deleteCmd} {
		cmd.Flags().StringVar(&cameraID, "camera", "", "camera identifier")
		_ = cmd.MarkFlagRequired("camera")
	}

	rootCmd.AddCommand(demoCmd, initCmd, getCmd, deleteCmd, clearTestCmd)
	return rootCmd
}
