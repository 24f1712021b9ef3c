package warehouse

// Table DDL, one statement per table. Dotted logical names map onto
// underscored MySQL table names (bronze.brands -> bronze_brands).

var bronzeStatements = []string{
	`CREATE TABLE IF NOT EXISTS bronze_brands (
	    id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    brand_code TEXT,
	    brand_name TEXT,
	    category_code TEXT,
	    source_file VARCHAR(255) NOT NULL,
	    line_number INT NOT NULL,
	    batch_id VARCHAR(36) NOT NULL,
	    ingested_at TIMESTAMP NOT NULL,
	    INDEX idx_batch (batch_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,

	`CREATE TABLE IF NOT EXISTS bronze_categories (
	    id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    category_code TEXT,
	    category_name TEXT,
	    source_file VARCHAR(255) NOT NULL,
	    line_number INT NOT NULL,
	    batch_id VARCHAR(36) NOT NULL,
	    ingested_at TIMESTAMP NOT NULL,
	    INDEX idx_batch (batch_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,

	`CREATE TABLE IF NOT EXISTS bronze_products (
	    id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    product_id TEXT,
	    sku TEXT,
	    color TEXT,
	    size TEXT,
	    material TEXT,
	    weight TEXT,
	    price TEXT,
	    brand_code TEXT,
	    source_file VARCHAR(255) NOT NULL,
	    line_number INT NOT NULL,
	    batch_id VARCHAR(36) NOT NULL,
	    ingested_at TIMESTAMP NOT NULL,
	    INDEX idx_batch (batch_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,

	`CREATE TABLE IF NOT EXISTS bronze_customers (
	    id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    customer_id TEXT,
	    phone TEXT,
	    country TEXT,
	    state TEXT,
	    source_file VARCHAR(255) NOT NULL,
	    line_number INT NOT NULL,
	    batch_id VARCHAR(36) NOT NULL,
	    ingested_at TIMESTAMP NOT NULL,
	    INDEX idx_batch (batch_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,

	`CREATE TABLE IF NOT EXISTS bronze_order_items (
	    id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    order_id TEXT,
	    order_date TEXT,
	    customer_id TEXT,
	    product_id TEXT,
	    quantity TEXT,
	    unit_price TEXT,
	    discount_percentage TEXT,
	    tax_amount TEXT,
	    currency TEXT,
	    coupon_code TEXT,
	    channel TEXT,
	    line_seq TEXT,
	    source_file VARCHAR(255) NOT NULL,
	    line_number INT NOT NULL,
	    batch_id VARCHAR(36) NOT NULL,
	    ingested_at TIMESTAMP NOT NULL,
	    INDEX idx_batch (batch_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
}

var silverStatements = []string{
	`CREATE TABLE IF NOT EXISTS silver_brands (
	    brand_code VARCHAR(64) PRIMARY KEY,
	    brand_name VARCHAR(255) NOT NULL,
	    category_code VARCHAR(64),
	    ingested_at TIMESTAMP NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,

	`CREATE TABLE IF NOT EXISTS silver_categories (
	    category_code VARCHAR(64) PRIMARY KEY,
	    category_name VARCHAR(255) NOT NULL,
	    ingested_at TIMESTAMP NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,

	`CREATE TABLE IF NOT EXISTS silver_products (
	    product_id BIGINT PRIMARY KEY,
	    sku VARCHAR(64),
	    color VARCHAR(64),
	    size VARCHAR(32),
	    material VARCHAR(64),
	    weight DOUBLE NULL,
	    price DECIMAL(20,4) NULL,
	    brand_code VARCHAR(64),
	    ingested_at TIMESTAMP NOT NULL,
	    INDEX idx_brand (brand_code)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,

	`CREATE TABLE IF NOT EXISTS silver_customers (
	    customer_id BIGINT PRIMARY KEY,
	    phone VARCHAR(32),
	    country VARCHAR(64),
	    state VARCHAR(32),
	    ingested_at TIMESTAMP NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,

	`CREATE TABLE IF NOT EXISTS silver_dates (
	    date DATE PRIMARY KEY,
	    year INT NOT NULL,
	    quarter INT NOT NULL,
	    month INT NOT NULL,
	    week INT NOT NULL,
	    day INT NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,

	`CREATE TABLE IF NOT EXISTS silver_order_items (
	    order_id VARCHAR(64) NOT NULL,
	    line_seq INT NOT NULL,
	    order_date DATE NULL,
	    customer_id BIGINT NULL,
	    product_id BIGINT NULL,
	    quantity BIGINT NULL,
	    unit_price DECIMAL(20,4) NULL,
	    discount_percentage DECIMAL(8,6) NULL,
	    tax_amount DECIMAL(20,4) NULL,
	    currency VARCHAR(8),
	    coupon_code VARCHAR(64),
	    channel VARCHAR(64),
	    channel_unknown BOOLEAN DEFAULT FALSE,
	    source_file VARCHAR(255),
	    line_number INT,
	    batch_id VARCHAR(36),
	    ingested_at TIMESTAMP NOT NULL,
	    INDEX idx_order (order_id),
	    INDEX idx_order_date (order_date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
}

var goldStatements = []string{
	`CREATE TABLE IF NOT EXISTS gold_dim_categories (
	    category_code VARCHAR(64) PRIMARY KEY,
	    category_name VARCHAR(255) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,

	`CREATE TABLE IF NOT EXISTS gold_dim_brands (
	    brand_code VARCHAR(64) PRIMARY KEY,
	    brand_name VARCHAR(255) NOT NULL,
	    category_code VARCHAR(64),
	    category_name VARCHAR(255)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,

	`CREATE TABLE IF NOT EXISTS gold_dim_products (
	    product_id BIGINT PRIMARY KEY,
	    sku VARCHAR(64),
	    color VARCHAR(64),
	    size VARCHAR(32),
	    material VARCHAR(64),
	    weight DOUBLE NULL,
	    price DECIMAL(20,4) NULL,
	    brand_code VARCHAR(64),
	    brand_name VARCHAR(255),
	    category_code VARCHAR(64),
	    category_name VARCHAR(255),
	    INDEX idx_brand (brand_code),
	    INDEX idx_category (category_code)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,

	`CREATE TABLE IF NOT EXISTS gold_dim_customers (
	    customer_id BIGINT PRIMARY KEY,
	    phone VARCHAR(32),
	    country VARCHAR(64),
	    state VARCHAR(32),
	    region VARCHAR(64),
	    INDEX idx_region (region)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,

	`CREATE TABLE IF NOT EXISTS gold_dim_dates (
	    date_id INT PRIMARY KEY,
	    date DATE NOT NULL,
	    year INT NOT NULL,
	    quarter INT NOT NULL,
	    month INT NOT NULL,
	    month_name VARCHAR(16) NOT NULL,
	    week INT NOT NULL,
	    day INT NOT NULL,
	    is_weekend BOOLEAN NOT NULL,
	    UNIQUE KEY uk_date (date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,

	`CREATE TABLE IF NOT EXISTS gold_fact_order_items (
	    order_id VARCHAR(64) NOT NULL,
	    line_seq INT NOT NULL,
	    date_id INT NOT NULL,
	    customer_id BIGINT NOT NULL,
	    product_id BIGINT NOT NULL,
	    quantity BIGINT NOT NULL,
	    unit_price DECIMAL(20,4) NOT NULL,
	    discount_percentage DECIMAL(8,6) NOT NULL,
	    gross_amount DECIMAL(20,4) NOT NULL,
	    discount_amount DECIMAL(20,4) NOT NULL,
	    tax_amount DECIMAL(20,4) NOT NULL,
	    sales_amount DECIMAL(20,4) NOT NULL,
	    currency VARCHAR(8) NOT NULL,
	    fx_rate DECIMAL(20,6) NOT NULL,
	    gross_amount_inr DECIMAL(20,4) NOT NULL,
	    discount_amount_inr DECIMAL(20,4) NOT NULL,
	    tax_amount_inr DECIMAL(20,4) NOT NULL,
	    sales_amount_inr DECIMAL(20,4) NOT NULL,
	    has_coupon BOOLEAN NOT NULL,
	    coupon_code VARCHAR(64),
	    channel VARCHAR(64),
	    PRIMARY KEY (order_id, product_id, line_seq),
	    INDEX idx_date (date_id),
	    INDEX idx_customer (customer_id),
	    INDEX idx_product (product_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
}

var controlStatements = []string{
	`CREATE TABLE IF NOT EXISTS etl_quarantine (
	    id VARCHAR(36) PRIMARY KEY,
	    stage VARCHAR(64) NOT NULL,
	    entity VARCHAR(64) NOT NULL,
	    reason VARCHAR(32) NOT NULL,
	    detail TEXT,
	    raw TEXT,
	    source_file VARCHAR(255),
	    line_number INT,
	    quarantined_at TIMESTAMP NOT NULL,
	    INDEX idx_reason (reason),
	    INDEX idx_stage (stage)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,

	`CREATE TABLE IF NOT EXISTS etl_stage_runs (
	    run_id VARCHAR(36) PRIMARY KEY,
	    stage VARCHAR(64) NOT NULL,
	    refdata_version VARCHAR(64) NOT NULL,
	    rows_in INT NOT NULL,
	    rows_out INT NOT NULL,
	    quarantined INT NOT NULL,
	    started_at TIMESTAMP NOT NULL,
	    duration_ms BIGINT NOT NULL,
	    INDEX idx_stage (stage)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
}
