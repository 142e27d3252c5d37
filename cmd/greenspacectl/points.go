package main

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	pointsCmd := &cobra.Command{Use: "points", Short: "Point operations"}

	// list
	var query string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List points, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			u := fmt.Sprintf("%s/api/points", apiFlag)
			if query != "" {
				u += "?q=" + url.QueryEscape(query)
			}
			data, err := doGet(u)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	listCmd.Flags().StringVarP(&query, "query", "q", "", "Filter by name, coordinates, or date")
	pointsCmd.AddCommand(listCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get POINT_ID",
		Short: "Get a point by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/points/%s", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	pointsCmd.AddCommand(getCmd)

	// create
	var name, coords, date, accuration, photo, user string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a point",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || coords == "" {
				return fmt.Errorf("--name and --coords required")
			}
			payload := map[string]interface{}{
				"name":        name,
				"coordinates": coords,
			}
			if date != "" {
				payload["date"] = date
			}
			if accuration != "" {
				payload["accuration"] = accuration
			}
			if photo != "" {
				payload["photoRef"] = photo
			}
			if user != "" {
				payload["userId"] = user
			}
			data, err := doPostJSON(fmt.Sprintf("%s/api/points", apiFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Point name (required)")
	createCmd.Flags().StringVarP(&coords, "coords", "c", "", "Coordinates as \"lat,lng\" (required)")
	createCmd.Flags().StringVarP(&date, "date", "d", "", "Observation date (YYYY-MM-DD, defaults to today)")
	createCmd.Flags().StringVar(&accuration, "accuration", "", "GPS accuracy label")
	createCmd.Flags().StringVarP(&photo, "photo", "p", "", "Photo: hosted URL or base64 payload")
	createCmd.Flags().StringVarP(&user, "user", "u", "", "Owner user ID")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("coords")
	pointsCmd.AddCommand(createCmd)

	// update
	var upName, upCoords, upDate, upAccuration, upPhoto string
	updateCmd := &cobra.Command{
		Use:   "update POINT_ID",
		Short: "Update a point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if upName == "" || upCoords == "" {
				return fmt.Errorf("--name and --coords required")
			}
			payload := map[string]interface{}{
				"name":        upName,
				"coordinates": upCoords,
			}
			if upDate != "" {
				payload["date"] = upDate
			}
			if upAccuration != "" {
				payload["accuration"] = upAccuration
			}
			if upPhoto != "" {
				payload["photoRef"] = upPhoto
			}
			data, err := doPatchJSON(fmt.Sprintf("%s/api/points/%s", apiFlag, args[0]), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	updateCmd.Flags().StringVarP(&upName, "name", "n", "", "Point name (required)")
	updateCmd.Flags().StringVarP(&upCoords, "coords", "c", "", "Coordinates as \"lat,lng\" (required)")
	updateCmd.Flags().StringVarP(&upDate, "date", "d", "", "Observation date")
	updateCmd.Flags().StringVar(&upAccuration, "accuration", "", "GPS accuracy label")
	updateCmd.Flags().StringVarP(&upPhoto, "photo", "p", "", "Photo: hosted URL or base64 payload")
	pointsCmd.AddCommand(updateCmd)

	// delete
	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete POINT_ID",
		Short: "Delete a point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(fmt.Sprintf("Delete point %s?", args[0])) {
				fmt.Fprintln(os.Stdout, "aborted")
				return nil
			}
			if _, err := doDelete(fmt.Sprintf("%s/api/points/%s", apiFlag, args[0])); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "deleted")
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	pointsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(pointsCmd)
}

func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
