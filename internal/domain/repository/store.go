package repository

import "context"

// Repos agrupa los repositorios de un mismo almacén (o de una misma transacción).
type Repos struct {
	CrateTypes CrateTypeRepository
	Clients    ClientRepository
	Movements  MovementRepository
	Balances   BalanceRepository
}

// TxRunner ejecuta una función dentro de una unidad de trabajo, pasando repositorios atados a ella.
// Si fn devuelve error no queda nada escrito. Dos unidades que tocan el mismo par
// (cliente, tipo de caja) se serializan.
//
// Dentro de fn solo deben usarse los repos recibidos.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}

// HealthChecker verifica la conectividad con el almacén.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
