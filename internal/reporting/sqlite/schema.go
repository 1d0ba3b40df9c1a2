package sqlite

// schema is the DDL executed once on Open. Dates are stored as
// YYYY-MM-DD and times as HH:MM:SS TEXT so strftime can bucket them.
const schema = `
CREATE TABLE IF NOT EXISTS pizza_types (
    pizza_type_id   TEXT    NOT NULL PRIMARY KEY,
    name            TEXT    NOT NULL,
    category        TEXT    NOT NULL,
    -- Comma separated, as published in the source dataset.
    ingredients     TEXT    NOT NULL DEFAULT '',
    UNIQUE (pizza_type_id)
);

CREATE TABLE IF NOT EXISTS pizzas (
    pizza_id        TEXT    NOT NULL PRIMARY KEY,
    pizza_type_id   TEXT    NOT NULL REFERENCES pizza_types(pizza_type_id),
    size            TEXT    NOT NULL,
    price           REAL    NOT NULL CHECK (price >= 0)
);

CREATE TABLE IF NOT EXISTS orders (
    order_id        INTEGER NOT NULL PRIMARY KEY,
    order_date      TEXT    NOT NULL,
    order_time      TEXT    NOT NULL
);

CREATE TABLE IF NOT EXISTS order_details (
    order_details_id INTEGER NOT NULL PRIMARY KEY,
    order_id         INTEGER NOT NULL REFERENCES orders(order_id),
    pizza_id         TEXT    NOT NULL REFERENCES pizzas(pizza_id),
    quantity         INTEGER NOT NULL CHECK (quantity >= 1)
);

CREATE INDEX IF NOT EXISTS idx_order_details_order_id ON order_details(order_id);
CREATE INDEX IF NOT EXISTS idx_order_details_pizza_id ON order_details(pizza_id);
CREATE INDEX IF NOT EXISTS idx_pizzas_pizza_type_id ON pizzas(pizza_type_id);
`
