package domain

const (
	RoleAdmin     = "ADMIN"
	RoleMedico    = "MEDICO"
	RoleEnfermero = "ENFERMERO"
)

const (
	TipoDerivacion    = "Derivación"
	TipoTransferencia = "Transferencia"
)

const (
	EstadoPendiente  = "Pendiente"
	EstadoAceptada   = "Aceptada"
	EstadoRechazada  = "Rechazada"
	EstadoCompletada = "Completada"
)

const (
	EstadoCasoActivo        = "Activo"
	EstadoCasoEnTratamiento = "EnTratamiento"
	EstadoCasoCurado        = "Curado"
	EstadoCasoAbandonado    = "Abandonado"
)

const (
	TPTEnCurso    = "EnCurso"
	TPTCompletado = "Completado"
	TPTAbandonado = "Abandonado"
	TPTSuspendido = "Suspendido"
)

const (
	ExamenBaciloscopia = "Baciloscopia"
	ExamenRadiografia  = "Radiografia"
	ExamenPPD          = "PPD"
	ExamenGeneXpert    = "GeneXpert"
)

const (
	AlertaContactoSinExamen = "CONTACTO_SIN_EXAMEN"
	AlertaTPTSinControl     = "TPT_SIN_CONTROL"
	AlertaTPTAbandonado     = "TPT_ABANDONADO"
	AlertaDerivacionVencida = "DERIVACION_PENDIENTE_VENCIDA"
)

const (
	NotifDerivacionCreada     = "DERIVACION_CREADA"
	NotifDerivacionAceptada   = "DERIVACION_ACEPTADA"
	NotifDerivacionRechazada  = "DERIVACION_RECHAZADA"
	NotifDerivacionCompletada = "DERIVACION_COMPLETADA"
)

// TransicionesEstado is the fail-closed transition table for
// derivaciones/transferencias: estado actual -> estados alcanzables.
// Rechazada and Completada are terminal.
var TransicionesEstado = map[string][]string{
	EstadoPendiente: {EstadoAceptada, EstadoRechazada},
	EstadoAceptada:  {EstadoCompletada},
}

// TransicionValida reports whether moving from "desde" to "hacia" is allowed.
func TransicionValida(desde, hacia string) bool {
	for _, e := range TransicionesEstado[desde] {
		if e == hacia {
			return true
		}
	}
	return false
}

// TiposDerivacion are the admitted values for DerivacionTransferencia.Tipo.
var TiposDerivacion = []string{TipoDerivacion, TipoTransferencia}

// EstadosDerivacion are the admitted values for DerivacionTransferencia.Estado.
var EstadosDerivacion = []string{EstadoPendiente, EstadoAceptada, EstadoRechazada, EstadoCompletada}
