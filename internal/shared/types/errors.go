package types

import "errors"

// Erros de validação de entrada retornados pelo CLI e pelos casos de uso.
var (
	ErrUnknownSource   = errors.New("unknown data source. Use one of: file, s3, costexplorer, sqlite")
	ErrUnknownRenderer = errors.New("unknown renderer. Use one of: terminal, html, png, canvas, table")
	ErrMissingInput    = errors.New("no input file specified. Use --input or set 'input' in the config file")
	ErrMissingBucket   = errors.New("no data bucket specified. Use --bucket or set DATA_BUCKET")
	ErrMissingOutput   = errors.New("this renderer writes a file. Use --output to choose its path")
	ErrConnectivity    = errors.New("AWS connectivity test failed")
	ErrUnknownProfile  = errors.New("AWS profile not found in ~/.aws/credentials or ~/.aws/config")
	ErrImportSQLite    = errors.New("import reads from file, s3 or costexplorer. The sqlite source is the destination")
)
