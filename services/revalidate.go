package services

// Page paths whose cached renders are invalidated after mutations.
const (
	PathHome            = "/"
	PathOrders          = "/orders"
	PathAdminCategories = "/admin/categories"
	PathAdminMenu       = "/admin/menu"
	PathAdminOrders     = "/admin/orders"
)

// Revalidator drops cached renders of the given page paths.
type Revalidator interface {
	Revalidate(paths ...string)
}

// Revalidators fans a revalidation out to several targets.
type Revalidators []Revalidator

func (rs Revalidators) Revalidate(paths ...string) {
	for _, r := range rs {
		if r != nil {
			r.Revalidate(paths...)
		}
	}
}

type noopRevalidator struct{}

func (noopRevalidator) Revalidate(...string) {}

func orNoopRevalidator(r Revalidator) Revalidator {
	if r == nil {
		return noopRevalidator{}
	}
	return r
}
