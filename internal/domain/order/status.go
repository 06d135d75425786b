package order

// ===============================
// Service Order Status
// ===============================

type Status string

const (
	StatusPending      Status = "pending"
	StatusLabSent      Status = "lab_sent"
	StatusAssembly     Status = "assembly"
	StatusQualityCheck Status = "quality_check"
	StatusReady        Status = "ready"
	StatusDelivered    Status = "delivered"
)

// sequência fixa; o fluxo só anda para frente, um passo por vez
var statusFlow = []Status{
	StatusPending,
	StatusLabSent,
	StatusAssembly,
	StatusQualityCheck,
	StatusReady,
	StatusDelivered,
}

func InitialStatus() Status {
	return StatusPending
}

func IsTerminal(s Status) bool {
	return s == StatusDelivered
}

func IsValid(s Status) bool {
	for _, v := range statusFlow {
		if v == s {
			return true
		}
	}
	return false
}

// Next devolve o próximo status da sequência. ok=false no estado terminal
// ou para um status desconhecido.
func Next(s Status) (Status, bool) {
	for i, v := range statusFlow {
		if v == s {
			if i == len(statusFlow)-1 {
				return s, false
			}
			return statusFlow[i+1], true
		}
	}
	return s, false
}
