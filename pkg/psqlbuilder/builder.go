package psqlbuilder

import "github.com/Masterminds/squirrel"

// builder squirrel с плейсхолдерами Postgres ($1, $2, ...)
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select начинает SELECT запрос
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert начинает INSERT запрос
func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}

// Update начинает UPDATE запрос
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Delete начинает DELETE запрос
func Delete(table string) squirrel.DeleteBuilder {
	return builder.Delete(table)
}

// Union склеивает SELECT'ы через UNION ALL и переводит плейсхолдеры в формат Postgres.
// Части должны быть построены с плейсхолдером "?" (squirrel.Question).
func Union(suffix string, parts ...squirrel.SelectBuilder) (string, []interface{}, error) {
	var (
		query string
		args  []interface{}
	)
	for i, part := range parts {
		partSQL, partArgs, err := part.PlaceholderFormat(squirrel.Question).ToSql()
		if err != nil {
			return "", nil, err
		}
		if i > 0 {
			query += " UNION ALL "
		}
		query += partSQL
		args = append(args, partArgs...)
	}
	if suffix != "" {
		query += " " + suffix
	}

	query, err := squirrel.Dollar.ReplacePlaceholders(query)
	if err != nil {
		return "", nil, err
	}
	return query, args, nil
}
