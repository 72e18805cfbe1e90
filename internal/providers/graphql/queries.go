package graphql

const orderFields = `id userID productName quantity price status createdAt`
const userFields = `id name email createdAt`
const paymentFields = `id orderID userID amount status paymentMethod createdAt`
const notificationFields = `id orderID userID message type status createdAt`

const (
	ordersQuery        = `query GetOrders { orders { ` + orderFields + ` } }`
	usersQuery         = `query GetUsers { users { ` + userFields + ` } }`
	paymentsQuery      = `query GetPayments { payments { ` + paymentFields + ` } }`
	notificationsQuery = `query GetNotifications { notifications { ` + notificationFields + ` } }`
	dashboardQuery     = `query GetDashboardData { ` +
		`orders { ` + orderFields + ` } ` +
		`users { ` + userFields + ` } ` +
		`payments { ` + paymentFields + ` } ` +
		`notifications { ` + notificationFields + ` } }`
	healthQuery = `query Health { health }`
)
