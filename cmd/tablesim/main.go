package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/partnership-table/internal/config"
	"github.com/palemoky/partnership-table/internal/events"
	"github.com/palemoky/partnership-table/internal/game"
	"github.com/palemoky/partnership-table/internal/game/room"
	"github.com/palemoky/partnership-table/internal/game/user"
	"github.com/palemoky/partnership-table/internal/logger"
	"github.com/palemoky/partnership-table/internal/storage"
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	seed := flag.Uint64("seed", 0, "随机种子，0 表示不固定")
	tables := flag.Int("tables", 1, "模拟的桌数")
	useRedis := flag.Bool("redis", false, "将房间快照保存到 Redis，并在启动时恢复")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}

	if err := logger.Init(cfg.Log.Dir); err != nil {
		log.Printf("初始化日志失败，输出到终端: %v", err)
	}
	defer logger.Close()
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			fmt.Fprintf(os.Stderr, "panic: %v (详见 %s)\n", r, logger.GetLogPath())
			code = 2
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var redisStore *storage.RedisStore
	if *useRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = client.Close() }()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.LogError("连接 Redis %s 失败，不保存快照: %v", cfg.Redis.Addr, err)
		} else {
			redisStore = storage.NewRedisStore(client)
		}
	}

	var pub events.Publisher
	if cfg.NATS.URL != "" {
		nc, err := events.Connect(cfg.NATS.URL, "tablesim")
		if err != nil {
			logger.LogError("连接 NATS 失败，不推送事件: %v", err)
		} else {
			defer func() { _ = nc.Drain() }()
			pub = events.NewNATSPublisher(nc, cfg.NATS.SubjectPrefix)
		}
	}

	var store room.RoomStore
	if redisStore != nil {
		store = redisStore
	}
	rm := room.NewRoomManager(store, pub, room.Options{
		Settings:    game.Settings{ToWin: cfg.Game.ToWin},
		RoomTimeout: cfg.Game.RoomTimeoutDuration(),
		NewRand:     randSource(*seed),
	})
	defer rm.Close()

	if redisStore != nil {
		n, err := rm.Restore(ctx, redisStore)
		if err != nil {
			logger.LogError("恢复房间失败: %v", err)
		} else {
			logger.LogInfo("从 Redis 恢复了 %d 个房间", n)
		}
	}

	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewPCG(*seed, ^*seed))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	for i := range *tables {
		if ctx.Err() != nil {
			break
		}
		if err := simulate(rm, i+1, rng); err != nil {
			logger.LogError("第 %d 桌模拟失败: %v", i+1, err)
			fmt.Fprintf(os.Stderr, "table %d: %v (日志: %s)\n", i+1, err, logger.GetLogPath())
			return 1
		}
	}
	return 0
}

// randSource 每个房间一个随机源；固定种子时按房间创建顺序递增
func randSource(seed uint64) func() *rand.Rand {
	if seed == 0 {
		return nil
	}
	var n atomic.Uint64
	return func() *rand.Rand {
		s := seed + n.Add(1) - 1
		return rand.New(rand.NewPCG(s, s))
	}
}

// simulate 四名玩家走完 建房、加入、准备、叫牌 直到有人叫打
func simulate(rm *room.RoomManager, n int, rng *rand.Rand) error {
	users := []user.User{
		user.New(fmt.Sprintf("t%d-Ann", n)),
		user.New(fmt.Sprintf("t%d-Bo", n)),
		user.New(fmt.Sprintf("t%d-Cy", n)),
		user.New(fmt.Sprintf("t%d-Di", n)),
	}

	r, err := rm.CreateRoom(users[0])
	if err != nil {
		return err
	}
	for _, u := range users[1:] {
		if _, err := rm.JoinRoom(u, r.Code); err != nil {
			return err
		}
	}
	for _, u := range users {
		if err := rm.SetPlayerReady(u, r.Code, true); err != nil {
			return err
		}
	}
	if r.GetState() != room.RoomStateBidding {
		return fmt.Errorf("房间 %s 未能开局: %s", r.Code, r.GetState())
	}

	table, _ := r.Table()
	fmt.Printf("table %d (room %s)\n", n, r.Code)
	for _, s := range game.Seats() {
		p := table.Seat(s)
		fmt.Printf("  %-5s %-8s %-8s drew %s\n", s, p.User.Name, p.Team, table.Draw(s))
	}

	deals := 1
	for {
		next, err := r.NextBidder()
		if err != nil {
			return err
		}
		bid := game.Pass
		if rng.IntN(4) == 0 {
			bid = game.Play
		}

		outcome, decided, err := rm.RegisterBid(next.User, r.Code, bid)
		if err != nil {
			return err
		}
		if !decided {
			continue
		}
		if outcome == game.Play {
			seat, _ := table.SeatOf(next.User.ID)
			fmt.Printf("  %s (%s) plays after %d deal(s)\n", next.User.Name, seat, deals)
			break
		}
		deals++
	}

	for _, u := range users {
		if err := rm.LeaveRoom(u, r.Code); err != nil {
			return err
		}
	}
	return nil
}
