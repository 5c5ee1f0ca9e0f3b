package app

import (
	"fmt"

	accountRepository "github.com/meridianfi/banking/internal/account/repository"
	accountService "github.com/meridianfi/banking/internal/account/service"
	accountUseCase "github.com/meridianfi/banking/internal/account/usecase"
	transactionRepository "github.com/meridianfi/banking/internal/transaction/repository"
)

// AccountNumberGenerator returns the account number generator.
func (c *Container) AccountNumberGenerator() accountService.NumberGenerator {
	c.numberGeneratorInit.Do(func() {
		c.numberGenerator = accountService.NewAccountNumberGenerator()
	})
	return c.numberGenerator
}

// AccountRepository returns the account repository based on database driver.
func (c *Container) AccountRepository() (accountUseCase.AccountRepository, error) {
	var err error
	c.accountRepoInit.Do(func() {
		c.accountRepo, err = c.initAccountRepository()
		if err != nil {
			c.initErrors["accountRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountRepo"]; exists {
		return nil, storedErr
	}
	return c.accountRepo, nil
}

// TransactionRepository returns the transaction repository based on database driver.
func (c *Container) TransactionRepository() (accountUseCase.TransactionRepository, error) {
	var err error
	c.transactionRepoInit.Do(func() {
		c.transactionRepo, err = c.initTransactionRepository()
		if err != nil {
			c.initErrors["transactionRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["transactionRepo"]; exists {
		return nil, storedErr
	}
	return c.transactionRepo, nil
}

// AccountUseCase returns the account use case instance.
func (c *Container) AccountUseCase() (accountUseCase.UseCase, error) {
	var err error
	c.accountUseCaseInit.Do(func() {
		c.accountUC, err = c.initAccountUseCase()
		if err != nil {
			c.initErrors["accountUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountUseCase"]; exists {
		return nil, storedErr
	}
	return c.accountUC, nil
}

// initAccountRepository creates the account repository instance.
func (c *Container) initAccountRepository() (accountUseCase.AccountRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for account repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return accountRepository.NewMySQLAccountRepository(db), nil
	case "postgres":
		return accountRepository.NewPostgreSQLAccountRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTransactionRepository creates the transaction repository instance.
func (c *Container) initTransactionRepository() (accountUseCase.TransactionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for transaction repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return transactionRepository.NewMySQLTransactionRepository(db), nil
	case "postgres":
		return transactionRepository.NewPostgreSQLTransactionRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAccountUseCase creates the account use case with all its dependencies.
func (c *Container) initAccountUseCase() (accountUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for account use case: %w", err)
	}

	accountRepo, err := c.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository for account use case: %w", err)
	}

	transactionRepo, err := c.TransactionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction repository for account use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for account use case: %w", err)
	}

	useCase := accountUseCase.NewAccountUseCase(
		txManager,
		accountRepo,
		transactionRepo,
		outboxRepo,
		c.AccountNumberGenerator(),
		c.config.AccountNumberMaxAttempts,
	)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for account use case: %w", err)
	}

	return accountUseCase.NewAccountUseCaseWithMetrics(useCase, businessMetrics), nil
}
