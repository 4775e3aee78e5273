package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/model"
)

const defaultRestockAmount = 10

// seedFile is the YAML document accepted by "seed". A bare list of sweets is also accepted.
type seedFile struct {
	Sweets []model.SweetInput `yaml:"sweets"`
}

func newSeedCmd(cc *commandContext) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create sweets in bulk from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sweets, err := readSeedFile(file)
			if err != nil {
				return err
			}
			s, err := cc.connect(cmd.Context())
			if err != nil {
				return err
			}
			created, err := s.inventory.BulkCreate(cmd.Context(), s.token, sweets)
			if err != nil {
				return err
			}
			if err := writef(cmd.OutOrStdout(), "created %d sweets\n", len(created)); err != nil {
				return err
			}
			return printSweets(cmd.OutOrStdout(), created)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML seed file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readSeedFile(path string) ([]model.SweetInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return parseSeed(data)
}

func parseSeed(data []byte) ([]model.SweetInput, error) {
	var doc seedFile
	if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Sweets) > 0 {
		return doc.Sweets, nil
	}
	var list []model.SweetInput
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if len(list) == 0 {
		return nil, errors.New("seed file lists no sweets")
	}
	return list, nil
}

func newListCmd(cc *commandContext) *cobra.Command {
	var name, category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sweets, optionally filtered by name or category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := cc.connect(cmd.Context())
			if err != nil {
				return err
			}
			sweets, err := s.inventory.List(cmd.Context(), s.token)
			if err != nil {
				return err
			}
			return printSweets(cmd.OutOrStdout(), filterSweets(sweets, name, category))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "case-insensitive substring of the name")
	cmd.Flags().StringVar(&category, "category", "", "category, ignoring case")
	return cmd
}

// filterSweets narrows by name substring and exact category, both ignoring case.
func filterSweets(sweets []model.Sweet, name, category string) []model.Sweet {
	out := model.Mirror{Sweets: sweets}.Filter(name)
	category = strings.TrimSpace(category)
	if category == "" {
		return out
	}
	kept := out[:0:0]
	for _, s := range out {
		if strings.EqualFold(s.Category, category) {
			kept = append(kept, s)
		}
	}
	return kept
}

func newRestockCmd(cc *commandContext) *cobra.Command {
	var amount int
	cmd := &cobra.Command{
		Use:   "restock <id>",
		Short: "Add stock to a sweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if amount <= 0 {
				return fmt.Errorf("amount must be positive, got %d", amount)
			}
			s, err := cc.connect(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.api.Restock(cmd.Context(), s.token, args[0], amount); err != nil {
				return fmt.Errorf("restock %s: %w", args[0], err)
			}
			return writef(cmd.OutOrStdout(), "restocked %s by %d\n", args[0], amount)
		},
	}
	cmd.Flags().IntVar(&amount, "amount", defaultRestockAmount, "units to add")
	return cmd
}

func newPurchaseCmd(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "purchase <id>",
		Short: "Buy one unit of a sweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cc.connect(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.api.Purchase(cmd.Context(), s.token, args[0]); err != nil {
				return fmt.Errorf("purchase %s: %w", args[0], err)
			}
			return writef(cmd.OutOrStdout(), "purchased one %s\n", args[0])
		},
	}
}

func printSweets(w io.Writer, sweets []model.Sweet) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writef(tw, "ID\tNAME\tCATEGORY\tPRICE\tQTY\n"); err != nil {
		return fmt.Errorf("write sweets header row: %w", err)
	}
	for _, s := range sweets {
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.Name, s.Category,
			strconv.FormatFloat(s.Price, 'f', 2, 64), strconv.Itoa(s.Quantity),
		); err != nil {
			return fmt.Errorf("write sweet row: %w", err)
		}
	}
	return tw.Flush()
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
