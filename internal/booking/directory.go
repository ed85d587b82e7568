package booking

import "github.com/barberpro/barberpro-client/internal/model"

// Directory is the statically known shop list shown to guests before
// any authenticated fetch. Picking a shop from it requires no network
// call.
func Directory() []model.Barberia {
	return []model.Barberia{
		{ID: 1, Nombre: "BarberPro Centro", Direccion: "Av. Principal 123", Telefono: "+593 99 123 4567", Estado: model.BarberiaAprobada},
		{ID: 2, Nombre: "BarberPro Norte", Direccion: "Av. Norte 456", Telefono: "+593 99 765 4321", Estado: model.BarberiaAprobada},
		{ID: 3, Nombre: "BarberPro Sur", Direccion: "Av. Sur 789", Telefono: "+593 99 555 1234", Estado: model.BarberiaAprobada},
	}
}
