package store

// SQLite DDL. Column names, types and constraint placement are shared with
// existing database files and must not change.
const (
	createProducts = `CREATE TABLE IF NOT EXISTS products (
    product_id INTEGER PRIMARY KEY,
    name TEXT,
    category TEXT NOT NULL,
    price REAL NOT NULL
);`

	createCustomers = `CREATE TABLE IF NOT EXISTS customers (
    customer_id INTEGER PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE
);`

	createOrders = `CREATE TABLE IF NOT EXISTS orders (
    order_id INTEGER PRIMARY KEY AUTOINCREMENT,
    customer_id INTEGER NOT NULL,
    product_id INTEGER NOT NULL,
    quantity INTEGER NOT NULL,
    order_date DATE NOT NULL,
    FOREIGN KEY (customer_id) REFERENCES customers(customer_id),
    FOREIGN KEY (product_id) REFERENCES products(product_id)
);`
)

// Postgres equivalents of the tables above.
const (
	pgCreateProducts = `CREATE TABLE IF NOT EXISTS products (
    product_id INTEGER PRIMARY KEY,
    name TEXT,
    category TEXT NOT NULL,
    price DOUBLE PRECISION NOT NULL
);`

	pgCreateCustomers = `CREATE TABLE IF NOT EXISTS customers (
    customer_id INTEGER PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE
);`

	pgCreateOrders = `CREATE TABLE IF NOT EXISTS orders (
    order_id SERIAL PRIMARY KEY,
    customer_id INTEGER NOT NULL,
    product_id INTEGER NOT NULL,
    quantity INTEGER NOT NULL,
    order_date DATE NOT NULL,
    FOREIGN KEY (customer_id) REFERENCES customers(customer_id),
    FOREIGN KEY (product_id) REFERENCES products(product_id)
);`
)

// sqliteSchemaDDL lists all CREATE TABLE statements in dependency order.
var sqliteSchemaDDL = []string{
	createProducts,
	createCustomers,
	createOrders,
}

var postgresSchemaDDL = []string{
	pgCreateProducts,
	pgCreateCustomers,
	pgCreateOrders,
}

// resetDML clears the tables in foreign-key dependency order.
var resetDML = []string{
	"DELETE FROM orders",
	"DELETE FROM customers",
	"DELETE FROM products",
}
