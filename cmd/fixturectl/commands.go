package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kbukum/fixturekit/collection"
	"github.com/kbukum/fixturekit/data"
	"github.com/kbukum/fixturekit/errors"
	"github.com/kbukum/fixturekit/version"
)

func newTablesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables of a dataset or catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := o.tableNames()
			if err != nil {
				return err
			}
			items := make([]data.Value, len(names))
			for i, n := range names {
				items[i] = data.String(n)
			}
			return o.render(data.List(items...))
		},
	}
}

func newCountCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of rows in a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fx, err := o.fixture()
			if err != nil {
				return err
			}
			return o.render(data.Int(int64(fx.RowCount())))
		},
	}
}

func newRawCmd(o *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "raw [index]",
		Short: "Print rows as stored, without any transformation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fx, err := o.fixture()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return o.render(tableValue(limitRows(fx.AllRaw(), limit)))
			}
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			row, ok := fx.Raw(index)
			if !ok {
				return errors.NotFound("row", args[0])
			}
			return o.render(data.Map(row))
		},
	}
	cmd.Flags().IntVar(&limit, "limit", -1, "print at most this many rows")
	return cmd
}

func newValueCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "value <column> <index>",
		Short: "Print one raw cell; null when the row or column is absent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fx, err := o.fixture()
			if err != nil {
				return err
			}
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return o.render(fx.Value(args[0], index))
		},
	}
}

func newGetCmd(o *options) *cobra.Command {
	var (
		pk  string
		set []string
	)
	cmd := &cobra.Command{
		Use:   "get [index]",
		Short: "Print one transformed row by index or primary key",
		Example: `  fixturectl -f users.yml get 0
  fixturectl -f users.yml get --pk 2 --set address.city=Paris`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byKey := cmd.Flags().Changed("pk")
			if byKey == (len(args) == 1) {
				return errors.InvalidInput("index", "give either an index or --pk")
			}
			override, err := parseAssignments("set", set)
			if err != nil {
				return err
			}
			fx, err := o.fixture()
			if err != nil {
				return err
			}

			var (
				row data.Row
				ok  bool
				ref string
			)
			if byKey {
				id, perr := parseValue(pk)
				if perr != nil {
					return errors.InvalidInput("pk", perr.Error())
				}
				ref = id.String()
				row, ok, err = fx.ByPrimaryKey(id.Interface(), override)
			} else {
				index, perr := parseIndex(args[0])
				if perr != nil {
					return perr
				}
				ref = args[0]
				row, ok, err = fx.Get(override, index)
			}
			if err != nil {
				return err
			}
			if !ok {
				return errors.NotFound("row", ref)
			}
			return o.render(data.Map(row))
		},
	}
	cmd.Flags().StringVar(&pk, "pk", "", "look the row up by primary key")
	cmd.Flags().StringArrayVar(&set, "set", nil, "override a field as key=value; keys may be dotted paths")
	return cmd
}

func newWhereCmd(o *options) *cobra.Command {
	var (
		filter, set []string
		limit       int
	)
	cmd := &cobra.Command{
		Use:   "where",
		Short: "Print the transformed rows matching every filter",
		Long: `Print the transformed rows matching every --filter. Without filters
every row is printed. Filters compare typed values exactly, so --filter id=2
does not match a row holding the string "2".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := parseAssignments("filter", filter)
			if err != nil {
				return err
			}
			override, err := parseAssignments("set", set)
			if err != nil {
				return err
			}
			fx, err := o.fixture()
			if err != nil {
				return err
			}
			rows, err := fx.Where(filters, override)
			if err != nil {
				return err
			}
			return o.render(tableValue(limitRows(rows, limit)))
		},
	}
	cmd.Flags().StringArrayVar(&filter, "filter", nil, "match a top-level column as key=value")
	cmd.Flags().StringArrayVar(&set, "set", nil, "override a field as key=value; keys may be dotted paths")
	cmd.Flags().IntVar(&limit, "limit", -1, "print at most this many rows")
	return cmd
}

func newValuesCmd(o *options) *cobra.Command {
	var filter []string
	cmd := &cobra.Command{
		Use:   "values <column>...",
		Short: "Print raw column values from the matching rows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := parseAssignments("filter", filter)
			if err != nil {
				return err
			}
			fx, err := o.fixture()
			if err != nil {
				return err
			}
			values, err := fx.Values(filters, args...)
			if err != nil {
				return err
			}
			out := data.Row{}
			for _, col := range args {
				out = out.Set(col, data.List(values[col]...))
			}
			return o.render(data.Map(out))
		},
	}
	cmd.Flags().StringArrayVar(&filter, "filter", nil, "match a top-level column as key=value")
	return cmd
}

func newVersionCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			switch outputFormat(o.output) {
			case formatJSON, formatYAML:
				return o.renderAny(info)
			}
			_, err := fmt.Fprintf(o.out, "%s %s\n", appName, info)
			return err
		},
	}
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return 0, errors.InvalidInput("index", "must be a non-negative integer").WithDetail("value", s)
	}
	return i, nil
}

// limitRows keeps the first n rows; a negative n keeps all of them.
func limitRows(t data.Table, n int) data.Table {
	if n < 0 {
		return t
	}
	return data.Table(collection.New(t...).Take(n).Values())
}

func tableValue(t data.Table) data.Value {
	items := make([]data.Value, len(t))
	for i, r := range t {
		items[i] = data.Map(r)
	}
	return data.List(items...)
}
