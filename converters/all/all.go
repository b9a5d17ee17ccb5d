package all

import (
	// Import all the output formats so they register themselves
	_ "github.com/darianmavgo/json2csv/converters/csv"
	_ "github.com/darianmavgo/json2csv/converters/excel"
	_ "github.com/darianmavgo/json2csv/converters/sqlite"
)
