package log

// Standard attribute keys, so grep and log pipelines see one spelling.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldClientIP  = "client_ip"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldUserAgent = "user_agent"
	FieldError     = "error"
	FieldOperation = "operation"

	FieldReciboID   = "recibo_id"
	FieldVeiculoID  = "veiculo_id"
	FieldClienteID  = "cliente_id"
	FieldPlaca      = "placa"
	FieldValorCents = "valor_cents"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentLedger  = "ledger"
)
